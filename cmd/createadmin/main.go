// Command createadmin creates the admin account from the API_ADMIN_* settings.
// It does nothing when the username already exists.
package main

import (
	"context"
	"log"
	"os"

	"jobboard/config"
	"jobboard/internal/app"
	"jobboard/internal/logging"
	"jobboard/internal/seed"
	"jobboard/internal/services"
	"jobboard/internal/validation"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.ValidateAdmin(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error(context.Background(), "createadmin failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	store, closeStore, err := app.OpenStore(ctx, cfg.DB, logger, true)
	if err != nil {
		return err
	}
	defer closeStore()

	users := services.NewUserService(store, logger)
	_, err = seed.Admin(ctx, users, validation.New(), cfg.Admin, os.Stdout)
	return err
}
