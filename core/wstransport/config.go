package wstransport

import "time"

// Config holds transport settings with environment variable support.
type Config struct {
	ReadBufferSize   int           `env:"WS_READ_BUFFER" envDefault:"1024"`
	WriteBufferSize  int           `env:"WS_WRITE_BUFFER" envDefault:"1024"`
	HandshakeTimeout time.Duration `env:"WS_HANDSHAKE_TIMEOUT" envDefault:"10s"`
	ReadLimit        int64         `env:"WS_READ_LIMIT" envDefault:"65536"`
	WriteTimeout     time.Duration `env:"WS_WRITE_TIMEOUT" envDefault:"10s"`
	PingInterval     time.Duration `env:"WS_PING_INTERVAL" envDefault:"30s"`
	AllowAnyOrigin   bool          `env:"WS_ALLOW_ANY_ORIGIN" envDefault:"false"`
	BinaryFrames     bool          `env:"WS_BINARY_FRAMES" envDefault:"false"`

	// Offered to clients that ask for one; "lws-broker" is what existing
	// broker clients request.
	Subprotocols []string `env:"WS_SUBPROTOCOLS" envDefault:"lws-broker"`
}

// Options converts the config into handler options. Zero values keep the
// handler defaults.
func (c Config) Options() []Option {
	opts := make([]Option, 0, 9)
	if c.ReadBufferSize > 0 {
		opts = append(opts, WithReadBuffer(c.ReadBufferSize))
	}
	if c.WriteBufferSize > 0 {
		opts = append(opts, WithWriteBuffer(c.WriteBufferSize))
	}
	if c.HandshakeTimeout > 0 {
		opts = append(opts, WithHandshakeTimeout(c.HandshakeTimeout))
	}
	if c.ReadLimit > 0 {
		opts = append(opts, WithReadLimit(c.ReadLimit))
	}
	if c.WriteTimeout > 0 {
		opts = append(opts, WithWriteTimeout(c.WriteTimeout))
	}
	if c.PingInterval > 0 {
		opts = append(opts, WithPingInterval(c.PingInterval))
	}
	if c.AllowAnyOrigin {
		opts = append(opts, WithAllowAnyOrigin())
	}
	if c.BinaryFrames {
		opts = append(opts, WithBinaryFrames())
	}
	if len(c.Subprotocols) > 0 {
		opts = append(opts, WithSubprotocols(c.Subprotocols...))
	}
	return opts
}
