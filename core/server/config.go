package server

import (
	"crypto/tls"
	"fmt"
	"time"
)

// Listener defaults. Write and read timeouts only cover plain HTTP requests
// (health, stats); upgraded websocket connections manage their own deadlines.
const (
	DefaultAddr            = ":9000"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
	DefaultMaxHeaderBytes  = 1 << 20
)

// Config holds listener settings loaded from SERVER_* variables.
type Config struct {
	Addr string `env:"SERVER_ADDR" envDefault:":9000"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s"`
	MaxHeaderBytes  int           `env:"SERVER_MAX_HEADER_BYTES" envDefault:"1048576"`

	// Both must be set to serve wss://.
	TLSCertFile string `env:"SERVER_TLS_CERT_FILE"`
	TLSKeyFile  string `env:"SERVER_TLS_KEY_FILE"`
}

// DefaultConfig matches the env defaults.
func DefaultConfig() Config {
	return Config{
		Addr:            DefaultAddr,
		ReadTimeout:     DefaultReadTimeout,
		WriteTimeout:    DefaultWriteTimeout,
		IdleTimeout:     DefaultIdleTimeout,
		ShutdownTimeout: DefaultShutdownTimeout,
		MaxHeaderBytes:  DefaultMaxHeaderBytes,
	}
}

// TLSEnabled reports whether both certificate and key are configured.
func (c Config) TLSEnabled() bool {
	return c.TLSCertFile != "" && c.TLSKeyFile != ""
}

// Options converts non-zero fields into server options.
func (c Config) Options() ([]Option, error) {
	opts := make([]Option, 0, 6)
	if c.ReadTimeout > 0 {
		opts = append(opts, WithReadTimeout(c.ReadTimeout))
	}
	if c.WriteTimeout > 0 {
		opts = append(opts, WithWriteTimeout(c.WriteTimeout))
	}
	if c.IdleTimeout > 0 {
		opts = append(opts, WithIdleTimeout(c.IdleTimeout))
	}
	if c.ShutdownTimeout > 0 {
		opts = append(opts, WithShutdownTimeout(c.ShutdownTimeout))
	}
	if c.MaxHeaderBytes > 0 {
		opts = append(opts, WithMaxHeaderBytes(c.MaxHeaderBytes))
	}
	if c.TLSEnabled() {
		tlsConfig, err := loadKeyPair(c.TLSCertFile, c.TLSKeyFile)
		if err != nil {
			return nil, err
		}
		opts = append(opts, WithTLS(tlsConfig))
	}
	return opts, nil
}

// NewFromConfig creates a Server from cfg. Options in opts are applied after
// the config-derived ones and win on conflict.
func NewFromConfig(cfg Config, opts ...Option) (*Server, error) {
	if cfg.Addr == "" {
		return nil, ErrMissingAddress
	}

	cfgOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return New(cfg.Addr, append(cfgOpts, opts...)...), nil
}

func loadKeyPair(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("%w: %s, %s: %w", ErrFailedLoadCert, certFile, keyFile, err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
