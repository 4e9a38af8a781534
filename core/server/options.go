package server

import (
	"crypto/tls"
	"log/slog"
	"time"
)

// Option configures server behavior.
type Option func(*Server)

// WithTLS configures TLS settings for HTTPS.
func WithTLS(config *tls.Config) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.tlsConfig = config
	}
}

// WithLogger sets a custom logger for server operations.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.logger = logger
	}
}

// WithShutdownTimeout sets the maximum time to wait for graceful shutdown.
func WithShutdownTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.shutdown = timeout
	}
}

// WithReadTimeout sets the maximum duration for reading a request.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.readTimeout = timeout
	}
}

// WithWriteTimeout sets the maximum duration before timing out response writes.
// Upgraded websocket connections clear this deadline during the handshake.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.writeTimeout = timeout
	}
}

// WithIdleTimeout sets how long keep-alive connections may stay idle.
func WithIdleTimeout(timeout time.Duration) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.idleTimeout = timeout
	}
}

// WithMaxHeaderBytes limits request header size.
func WithMaxHeaderBytes(n int) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.maxHeaderBytes = n
	}
}

// WithOnShutdown registers fn to run when graceful shutdown begins. Use it to
// close hijacked connections such as websockets.
func WithOnShutdown(fn func()) Option {
	return func(s *Server) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.onShutdown = append(s.onShutdown, fn)
	}
}
