package routes

import (
	"context"

	"jobboard/internal/api/handlers"
	"jobboard/internal/api/middleware"
	"jobboard/internal/app"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes sets up the routes by calling resource-specific registration functions
func RegisterRoutes(router *gin.Engine, app *app.Application) {
	cfg := app.Config

	accountHandler := handlers.NewAccountHandler(app.Users, app.Sessions,
		handlers.CookieConfig{Name: cfg.Session.CookieName, Secure: cfg.Session.CookieSecure},
		app.Validator, app.Logger)
	jobHandler := handlers.NewJobHandler(app.Jobs, app.Validator, app.Logger)
	applicationHandler := handlers.NewApplicationHandler(app.Applications, app.Validator, app.Logger)
	notificationHandler := handlers.NewNotificationHandler(app.Notifications, app.Logger)

	router.Use(middleware.SessionAuth(app.Sessions, app.Users, cfg.Session.CookieName, app.Logger))
	authMiddleware := middleware.RequireAuth()

	RegisterAccountRoutes(router, accountHandler, authMiddleware)
	RegisterJobRoutes(router, jobHandler, authMiddleware)
	RegisterApplicationRoutes(router, applicationHandler, notificationHandler, authMiddleware)

	router.GET("/health", handlers.HealthCheck(map[string]handlers.Pinger{
		"database": app.Store,
		"redis": handlers.PingerFunc(func(ctx context.Context) error {
			return app.RedisClient.Ping(ctx).Err()
		}),
	}, app.Logger))
}
