package server

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/wsbroker/core/logger"
)

// Server wraps http.Server with graceful shutdown and configuration options.
// Safe for concurrent use.
type Server struct {
	mu             sync.RWMutex
	addr           string
	server         *http.Server
	listener       net.Listener
	logger         *slog.Logger
	shutdown       time.Duration
	readTimeout    time.Duration
	writeTimeout   time.Duration
	idleTimeout    time.Duration
	maxHeaderBytes int
	tlsConfig      *tls.Config
	onShutdown     []func()
	running        bool
}

// New creates a new Server with the given address and options.
// Defaults to 30-second graceful shutdown timeout and a no-op logger.
func New(addr string, opts ...Option) *Server {
	s := &Server{
		addr:           addr,
		logger:         logger.Discard(),
		shutdown:       DefaultShutdownTimeout,
		readTimeout:    DefaultReadTimeout,
		writeTimeout:   DefaultWriteTimeout,
		idleTimeout:    DefaultIdleTimeout,
		maxHeaderBytes: DefaultMaxHeaderBytes,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start binds the address, serves handler and blocks until the context is
// canceled or serving fails. Returns context.Err() when the context is canceled.
// Use Stop() for graceful shutdown.
func (s *Server) Start(ctx context.Context, handler http.Handler) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrServerAlreadyRunning
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.mu.Unlock()
		return errors.Join(ErrHTTPServer, err)
	}

	s.running = true
	s.listener = ln
	s.server = &http.Server{
		Handler:        handler,
		ReadTimeout:    s.readTimeout,
		WriteTimeout:   s.writeTimeout,
		IdleTimeout:    s.idleTimeout,
		MaxHeaderBytes: s.maxHeaderBytes,
		TLSConfig:      s.tlsConfig,
	}
	// Hijacked websocket connections are invisible to Shutdown; hooks let
	// their owners close them.
	for _, fn := range s.onShutdown {
		s.server.RegisterOnShutdown(fn)
	}
	srv := s.server
	hasTLS := s.tlsConfig != nil
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "starting server", logger.Component("server"), slog.String("addr", ln.Addr().String()))

		var err error
		if hasTLS {
			err = srv.ServeTLS(ln, "", "")
		} else {
			err = srv.Serve(ln)
		}

		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- errors.Join(ErrHTTPServer, err)
		}
	}()

	select {
	case err := <-errCh:
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop gracefully shuts down the server using the configured timeout.
// Returns immediately if the server is not running.
func (s *Server) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running || s.server == nil {
		return nil
	}

	s.logger.Info("shutting down server gracefully", logger.Component("server"), slog.Duration("timeout", s.shutdown))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
	defer cancel()

	err := s.server.Shutdown(shutdownCtx)
	s.running = false

	if err != nil {
		s.logger.Error("server shutdown error", logger.Component("server"), logger.Error(err))
		return errors.Join(ErrHTTPShutdown, err)
	}

	s.logger.Info("server shutdown complete", logger.Component("server"))
	return nil
}

// Addr returns the bound address while running, or the configured one.
func (s *Server) Addr() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.running && s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.addr
}

// Running reports whether the server is serving.
func (s *Server) Running() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Run provides errgroup compatibility for coordinated lifecycle management.
// Returns a function that starts the server, monitors context cancellation,
// and performs graceful shutdown when the context is cancelled.
func (s *Server) Run(ctx context.Context, handler http.Handler) func() error {
	return func() error {
		errCh := make(chan error, 1)
		go func() {
			errCh <- s.Start(ctx, handler)
		}()

		select {
		case <-ctx.Done():
			if stopErr := s.Stop(); stopErr != nil {
				s.logger.Error("failed to stop server during context cancellation", logger.Component("server"), logger.Error(stopErr))
			}
			<-errCh
			return nil
		case err := <-errCh:
			if ctx.Err() != nil {
				// Start noticed cancellation first; still drain the server.
				if stopErr := s.Stop(); stopErr != nil {
					s.logger.Error("failed to stop server during context cancellation", logger.Component("server"), logger.Error(stopErr))
				}
				return nil
			}
			return err
		}
	}
}

