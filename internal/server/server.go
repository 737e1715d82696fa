package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"jobboard/internal/api/middleware"
	"jobboard/internal/api/routes"
	"jobboard/internal/app"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// multipartOverhead leaves room for the text fields next to the resume.
const multipartOverhead = 1 << 20

type Server struct {
	router *gin.Engine
	http   *http.Server
	app    *app.Application // Store the application container
}

func NewServer(app *app.Application) *Server {
	router := gin.New()
	router.Use(gin.Recovery(), middleware.Logger(app.Logger))

	// --- Configure and Apply CORS Middleware ---
	app.Logger.Info(context.Background(), "configuring CORS", "origins", app.Config.CORS.AllowedOrigins)
	corsConfig := cors.Config{
		AllowOriginFunc: func(origin string) bool {
			for _, allowed := range app.Config.CORS.AllowedOrigins {
				if allowed == "*" || allowed == origin {
					return true
				}
			}
			return false
		},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", middleware.RequestIDHeader},
		AllowCredentials: true, // session cookie
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	_ = router.SetTrustedProxies(nil) // Remove the gin warning about untrusted proxies
	router.MaxMultipartMemory = app.Config.Storage.MaxUploadBytes + multipartOverhead

	routes.RegisterRoutes(router, app)

	cfg := app.Config.Server
	return &Server{
		router: router,
		app:    app,
		http: &http.Server{
			Addr:         cfg.Addr(),
			Handler:      router,
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
		},
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.app.Logger.Info(context.Background(), "server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
