package handlers

import (
	"context"
	"net/http"
	"time"

	"jobboard/internal/logging"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency the health check probes.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error { return f(ctx) }

const healthTimeout = 2 * time.Second

// HealthCheck reports whether every named dependency answers a ping.
//
//	@Summary		Health check
//	@Description	Check if the service and its database and Redis are reachable
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	map[string]string	"API is healthy"
//	@Failure		503	{object}	map[string]string	"A dependency is down"
//	@Router			/health [get]
func HealthCheck(deps map[string]Pinger, log logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		resp := gin.H{"status": "ok"}
		status := http.StatusOK
		for name, dep := range deps {
			if err := dep.Ping(ctx); err != nil {
				log.Warn(ctx, "health check failed", "dependency", name, "error", err)
				resp[name] = "unavailable"
				resp["status"] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			resp[name] = "ok"
		}
		c.JSON(status, resp)
	}
}
