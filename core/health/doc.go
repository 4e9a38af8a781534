// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: process is running (no dependency checks)
//   - Readiness: all dependency checks pass
//   - NoContent: returns 204 for minimal overhead
//   - Stats: broker counters as JSON
//
// Usage:
//
//	mux.HandleFunc("GET /health/live", health.Liveness)
//	mux.Handle("GET /health/ready", health.Readiness(log,
//		health.LoopCheck(loop),
//		redis.Healthcheck(client),
//	))
//	mux.Handle("GET /stats", health.Stats(log, loop, dispatcher))
//
// Dependency checks follow the func(context.Context) error signature.
package health
