// Package redis connects the broker to Redis.
//
// Connect creates a go-redis client with URL validation, retries with
// exponential backoff and a verifying ping. Healthcheck turns a client into
// a readiness check for the health endpoints.
//
// Bridge subscribes to a Redis pub/sub channel and registers itself with the
// dispatcher as a publisher connection named "redis:<channel>". Each Redis
// message goes through the same path as a websocket publisher frame, so ring
// capacity and the no-subscriber rule apply to it too:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		return err
//	}
//	defer client.Close()
//
//	bridge, err := redis.NewBridge(client, cfg.Channel, loop, dispatcher,
//		redis.WithLogger(log),
//	)
//	if err != nil {
//		return err
//	}
//	eg.Go(func() error { return bridge.Run(ctx) })
//
// Supported URLs use the redis:// or rediss:// scheme.
package redis
