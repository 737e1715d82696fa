package app

import (
	"context"
	"fmt"
	"os"

	"jobboard/config"
	"jobboard/internal/database"
	"jobboard/internal/logging"
	"jobboard/internal/storage/postgres"
)

// NewLogger builds the process logger from the log section of cfg.
func NewLogger(cfg config.LogConfig) logging.Logger {
	return logging.New(os.Stderr, cfg.Level, cfg.Format)
}

// OpenStore connects to Postgres, applies migrations when migrate is set and
// returns the store with a func that releases the pool.
func OpenStore(ctx context.Context, cfg config.DBConfig, log logging.Logger, migrate bool) (*postgres.Store, func(), error) {
	pool, err := database.NewConnectionPool(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	db := database.OpenDB(pool)
	closeFn := func() {
		_ = db.Close()
		pool.Close()
	}

	if migrate {
		if err := database.Migrate(ctx, db); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("migrating database: %w", err)
		}
		log.Info(ctx, "database migrations applied")
	}

	return postgres.NewStore(db), closeFn, nil
}
