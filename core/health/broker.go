package health

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/core/logger"
)

// LoopCheck reports the broker loop as healthy when it runs a no-op within
// the request deadline.
func LoopCheck(loop *broker.Loop) Check {
	return func(ctx context.Context) error {
		return loop.Do(ctx, func() {})
	}
}

// Stats serves the dispatcher's counters as JSON. The snapshot is taken on
// the loop goroutine.
func Stats(log *slog.Logger, loop *broker.Loop, d *broker.Dispatcher) http.Handler {
	if log == nil {
		log = logger.Discard()
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var st broker.Stats
		if err := loop.Do(r.Context(), func() { st = d.Stats() }); err != nil {
			log.WarnContext(r.Context(), "stats unavailable", logger.Component("health"), logger.Error(err))
			writeText(w, http.StatusServiceUnavailable, http.StatusText(http.StatusServiceUnavailable))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "no-store")
		if err := json.NewEncoder(w).Encode(st); err != nil {
			log.WarnContext(r.Context(), "stats encode failed", logger.Component("health"), logger.Error(err))
		}
	})
}
