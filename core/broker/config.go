package broker

import "github.com/dmitrymomot/wsbroker/pkg/broadcast"

// Config holds broker settings with environment variable support.
type Config struct {
	// Request path that classifies a connection as a publisher.
	PublishPath string `env:"BROKER_PUBLISH_PATH" envDefault:"/publisher"`

	// Number of message slots shared by all subscribers.
	RingCapacity int `env:"BROKER_RING_CAPACITY" envDefault:"8"`

	// Pending events the loop accepts before submitters block.
	LoopBuffer int `env:"BROKER_LOOP_BUFFER" envDefault:"256"`
}

// DefaultConfig returns a Config with the same defaults as the env tags.
func DefaultConfig() Config {
	return Config{
		PublishPath:  DefaultPublishPath,
		RingCapacity: broadcast.DefaultCapacity,
		LoopBuffer:   DefaultLoopBuffer,
	}
}

// NewFromConfig creates a dispatcher and the loop that serializes access to it.
// Additional options override config values.
func NewFromConfig(cfg Config, opts ...Option) (*Dispatcher, *Loop) {
	configOpts := make([]Option, 0, len(opts)+2)
	if cfg.PublishPath != "" {
		configOpts = append(configOpts, WithPublishPath(cfg.PublishPath))
	}
	if cfg.RingCapacity > 0 {
		configOpts = append(configOpts, WithCapacity(cfg.RingCapacity))
	}
	configOpts = append(configOpts, opts...)

	return New(configOpts...), NewLoop(cfg.LoopBuffer)
}
