package logger

import (
	"io"
	"log/slog"
	"os"
)

type config struct {
	level  slog.Level
	json   bool
	output io.Writer
	attrs  []slog.Attr
}

// Option configures a logger built by New.
type Option func(*config)

// WithLevel sets the minimum level.
func WithLevel(level slog.Level) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithJSONFormatter switches output to JSON.
func WithJSONFormatter() Option {
	return func(c *config) {
		c.json = true
	}
}

// WithTextFormatter switches output to logfmt-style text.
func WithTextFormatter() Option {
	return func(c *config) {
		c.json = false
	}
}

// WithOutput sets the destination writer. Nil is ignored.
func WithOutput(w io.Writer) Option {
	return func(c *config) {
		if w != nil {
			c.output = w
		}
	}
}

// WithAttr adds attributes to every record.
func WithAttr(attrs ...slog.Attr) Option {
	return func(c *config) {
		c.attrs = append(c.attrs, attrs...)
	}
}

// WithDevelopment configures text output at debug level.
func WithDevelopment(service string) Option {
	return func(c *config) {
		c.level = slog.LevelDebug
		c.json = false
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "development"))
	}
}

// WithProduction configures JSON output at info level.
func WithProduction(service string) Option {
	return func(c *config) {
		c.level = slog.LevelInfo
		c.json = true
		c.attrs = append(c.attrs, slog.String("service", service), slog.String("env", "production"))
	}
}

// WithEnvironment picks WithProduction for "production" and "staging",
// WithDevelopment for anything else.
func WithEnvironment(env, service string) Option {
	switch env {
	case "production", "staging":
		return WithProduction(service)
	default:
		return WithDevelopment(service)
	}
}

// New builds a slog.Logger. Defaults to text output at info level on stdout.
func New(opts ...Option) *slog.Logger {
	cfg := &config{
		level:  slog.LevelInfo,
		output: os.Stdout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	handlerOpts := &slog.HandlerOptions{Level: cfg.level}
	var h slog.Handler
	if cfg.json {
		h = slog.NewJSONHandler(cfg.output, handlerOpts)
	} else {
		h = slog.NewTextHandler(cfg.output, handlerOpts)
	}
	if len(cfg.attrs) > 0 {
		h = h.WithAttrs(cfg.attrs)
	}
	return slog.New(h)
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel maps "debug", "info", "warn" and "error" to slog levels.
// Unknown values yield info.
func ParseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}
