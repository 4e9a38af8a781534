package wstransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

// Option configures a Handler.
type Option func(*Handler)

// WithReadBuffer sets the upgrader's read buffer size.
func WithReadBuffer(size int) Option {
	return func(h *Handler) {
		h.upgrader.ReadBufferSize = size
	}
}

// WithWriteBuffer sets the upgrader's write buffer size.
func WithWriteBuffer(size int) Option {
	return func(h *Handler) {
		h.upgrader.WriteBufferSize = size
	}
}

// WithHandshakeTimeout limits how long the upgrade may take.
func WithHandshakeTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		h.upgrader.HandshakeTimeout = timeout
	}
}

// WithOriginCheck sets a custom origin check.
func WithOriginCheck(fn func(r *http.Request) bool) Option {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = fn
	}
}

// WithAllowAnyOrigin accepts connections from any origin.
func WithAllowAnyOrigin() Option {
	return func(h *Handler) {
		h.upgrader.CheckOrigin = func(r *http.Request) bool {
			return true
		}
	}
}

// WithSubprotocols sets the subprotocols offered during the handshake.
func WithSubprotocols(protocols ...string) Option {
	return func(h *Handler) {
		h.upgrader.Subprotocols = protocols
	}
}

// WithUpgradeHeaders sets extra headers for the handshake response.
func WithUpgradeHeaders(header http.Header) Option {
	return func(h *Handler) {
		h.responseHeader = header
	}
}

// WithReadLimit caps the size of an inbound message. Larger messages close
// the connection.
func WithReadLimit(n int64) Option {
	return func(h *Handler) {
		h.readLimit = n
	}
}

// WithWriteTimeout bounds each outbound frame write.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(h *Handler) {
		h.writeTimeout = timeout
	}
}

// WithPingInterval enables keepalive pings. A peer that does not answer
// within two intervals is disconnected. Zero disables pings.
func WithPingInterval(interval time.Duration) Option {
	return func(h *Handler) {
		h.pingInterval = interval
	}
}

// WithBinaryFrames sends messages to subscribers as binary frames instead of
// text frames.
func WithBinaryFrames() Option {
	return func(h *Handler) {
		h.messageType = websocket.BinaryMessage
	}
}

// WithLogger sets the logger for connection lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}
