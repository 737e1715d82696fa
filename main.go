package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"jobboard/config"
	"jobboard/internal/app"
	"jobboard/internal/database"
	"jobboard/internal/filestore"
	"jobboard/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := app.NewLogger(cfg.Log)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Initialize Redis Client ---
	redisClient, err := database.NewRedisClient(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Error(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	store, closeStore, err := app.OpenStore(ctx, cfg.DB, logger, cfg.DB.AutoMigrate)
	if err != nil {
		logger.Error(ctx, "failed to open database", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	files, err := filestore.New(ctx, cfg.Storage)
	if err != nil {
		logger.Error(ctx, "failed to initialize resume storage", "error", err)
		os.Exit(1)
	}

	application := app.New(cfg, logger, store, redisClient, files)
	srv := server.NewServer(application)

	// --- Graceful Shutdown Handling ---
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Error(ctx, "server error", "error", err)
		}
	case <-ctx.Done():
		logger.Info(context.Background(), "shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(shutdownCtx, "graceful shutdown failed", "error", err)
		}
	}

	logger.Info(context.Background(), "application gracefully stopped")
}
