package broker

import "log/slog"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger for drops and connection lifecycle events.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithPublishPath sets the request path that identifies publishers.
func WithPublishPath(path string) Option {
	return func(d *Dispatcher) {
		d.publishPath = path
	}
}

// WithCapacity sets the ring size. Non-positive values keep the default.
func WithCapacity(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.capacity = n
		}
	}
}
