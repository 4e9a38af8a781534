// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package loads a .env file on first use (if present) and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	type BrokerConfig struct {
//		PublishPath  string `env:"BROKER_PUBLISH_PATH" envDefault:"/publisher"`
//		RingCapacity int    `env:"BROKER_RING_CAPACITY" envDefault:"8"`
//	}
//
//	func main() {
//		var cfg BrokerConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per process. Different types
// are cached independently. Reset drops the cache, which is mostly useful in
// tests.
package config
