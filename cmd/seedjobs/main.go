// Command seedjobs inserts the sample job postings, skipping any whose
// title and company already exist.
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
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	if err := run(context.Background(), cfg, logger); err != nil {
		logger.Error(context.Background(), "seedjobs failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger logging.Logger) error {
	store, closeStore, err := app.OpenStore(ctx, cfg.DB, logger, true)
	if err != nil {
		return err
	}
	defer closeStore()

	_, err = seed.Jobs(ctx, services.NewJobService(store, logger), os.Stdout)
	return err
}
