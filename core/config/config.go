package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrNotStructPointer is returned when Load gets anything other than a
// non-nil pointer to a struct.
var ErrNotStructPointer = errors.New("config: target must be a non-nil pointer to a struct")

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	cache      = map[reflect.Type]any{}
)

// Load fills cfg from environment variables. The first call for a type parses
// the environment; later calls for the same type copy the cached value.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNotStructPointer
	}
	typ := reflect.TypeOf(*cfg)
	if typ.Kind() != reflect.Struct {
		return ErrNotStructPointer
	}

	// A missing .env file is the normal case outside local development.
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*cfg = cached.(T)
		return nil
	}

	var loaded T
	if err := env.Parse(&loaded); err != nil {
		return fmt.Errorf("config: parse %s: %w", typ, err)
	}
	cache[typ] = loaded
	*cfg = loaded
	return nil
}

// MustLoad is Load that panics on error. Intended for process startup.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}

// Reset clears the cache so the next Load re-reads the environment.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	cache = map[reflect.Type]any{}
}
