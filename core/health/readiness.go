package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/wsbroker/core/logger"
)

// DefaultCheckTimeout bounds the full set of readiness checks.
const DefaultCheckTimeout = 2 * time.Second

// Check is a dependency probe.
type Check func(context.Context) error

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
//
// Example:
//
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		health.LoopCheck(loop),
//		redis.Healthcheck(client),
//	))
func Readiness(log *slog.Logger, checks ...Check) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), DefaultCheckTimeout)
		defer cancel()

		for _, check := range checks {
			if err := check(ctx); err != nil {
				log.ErrorContext(ctx, "readiness check failed", logger.Component("health"), logger.Error(err))
				writeText(w, http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
				return
			}
		}

		writeText(w, http.StatusOK, "READY")
	})
}
