package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connect parses cfg.ConnectionURL, then pings the server until it answers,
// backing off exponentially between attempts. The returned client must be
// closed by the caller.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	if cfg.ConnectionURL == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(cfg.ConnectionURL, "redis://") && !strings.HasPrefix(cfg.ConnectionURL, "rediss://") {
		return nil, fmt.Errorf("%w: unsupported scheme", ErrFailedToParseRedisConnString)
	}

	opts, err := redis.ParseURL(cfg.ConnectionURL)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseRedisConnString, err)
	}

	if cfg.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.ConnectTimeout)
		defer cancel()
	}

	client := redis.NewClient(opts)

	attempts := max(cfg.RetryAttempts, 1)
	interval := cfg.RetryInterval
	for i := range attempts {
		if err = client.Ping(ctx).Err(); err == nil {
			return client, nil
		}
		if i == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			_ = client.Close()
			return nil, errors.Join(ErrRedisNotReady, ctx.Err())
		case <-time.After(interval << i):
		}
	}

	_ = client.Close()
	return nil, errors.Join(ErrRedisNotReady, err)
}

// Healthcheck returns a readiness check that pings client.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
