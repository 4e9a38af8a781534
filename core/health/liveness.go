package health

import (
	"io"
	"net/http"
)

// Liveness reports that the process is serving HTTP.
// Always returns "ALIVE" with 200 OK. No dependency checks.
//
// Example:
//
//	mux.HandleFunc("GET /health/live", health.Liveness)
func Liveness(w http.ResponseWriter, _ *http.Request) {
	writeText(w, http.StatusOK, "ALIVE")
}

// NoContent returns HTTP 204 without body. Ideal for high-frequency checks.
func NoContent(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
