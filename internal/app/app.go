// Package app wires the job board's dependencies together.
package app

import (
	"jobboard/config"
	"jobboard/internal/filestore"
	"jobboard/internal/logging"
	"jobboard/internal/services"
	"jobboard/internal/session"
	"jobboard/internal/storage"
	"jobboard/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
)

// Application holds core application dependencies.
type Application struct {
	Config      *config.Config
	Logger      logging.Logger
	Validator   *validator.Validate
	Store       storage.Store
	RedisClient *redis.Client
	Files       filestore.Store
	Sessions    *session.Manager

	Users         services.UserService
	Jobs          services.JobService
	Applications  services.ApplicationService
	Notifications services.NotificationService
}

// New builds the services on top of the infrastructure clients.
func New(cfg *config.Config, log logging.Logger, store storage.Store, redisClient *redis.Client, files filestore.Store) *Application {
	return &Application{
		Config:      cfg,
		Logger:      log,
		Validator:   validation.New(),
		Store:       store,
		RedisClient: redisClient,
		Files:       files,
		Sessions:    session.NewManager(redisClient, cfg.Session.Secret, cfg.Session.TTL),

		Users: services.NewUserService(store, log),
		Jobs:  services.NewJobService(store, log),
		Applications: services.NewApplicationService(services.ApplicationServiceConfig{
			Store:          store,
			Files:          files,
			Notifier:       services.NewInboxNotifier(),
			MaxResumeBytes: cfg.Storage.MaxUploadBytes,
			Logger:         log,
		}),
		Notifications: services.NewNotificationService(store),
	}
}
