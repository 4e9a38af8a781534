package redis

import "time"

// Config holds Redis connection and bridge settings.
// An empty ConnectionURL disables the bridge.
type Config struct {
	ConnectionURL  string        `env:"REDIS_URL"`
	Channel        string        `env:"REDIS_CHANNEL" envDefault:"wsbroker"`
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
}

// Enabled reports whether a connection URL is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
