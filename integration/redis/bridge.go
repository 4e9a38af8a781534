package redis

import (
	"context"
	"errors"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/core/logger"
)

// Bridge republishes messages from a Redis pub/sub channel to broker
// subscribers. To the dispatcher it is one more publisher connection.
type Bridge struct {
	client     redis.UniversalClient
	channel    string
	loop       *broker.Loop
	dispatcher *broker.Dispatcher
	logger     *slog.Logger
}

// BridgeOption configures a Bridge.
type BridgeOption func(*Bridge)

// WithLogger sets the bridge logger.
func WithLogger(l *slog.Logger) BridgeOption {
	return func(b *Bridge) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBridge creates a bridge for channel. Run starts it.
func NewBridge(client redis.UniversalClient, channel string, loop *broker.Loop, dispatcher *broker.Dispatcher, opts ...BridgeOption) (*Bridge, error) {
	if channel == "" {
		return nil, ErrEmptyChannel
	}
	b := &Bridge{
		client:     client,
		channel:    channel,
		loop:       loop,
		dispatcher: dispatcher,
		logger:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// ID implements broker.Conn.
func (b *Bridge) ID() string {
	return "redis:" + b.channel
}

// Write implements broker.Conn. The dispatcher never writes to publishers,
// so anything handed here is discarded.
func (b *Bridge) Write(p []byte) (int, error) {
	return len(p), nil
}

// RequestWritable implements broker.Conn as a no-op.
func (b *Bridge) RequestWritable() {}

// Run subscribes to the channel, registers the bridge as a publisher and
// forwards every message until ctx is canceled or the subscription ends.
// Cancellation returns nil.
func (b *Bridge) Run(ctx context.Context) error {
	sub := b.client.Subscribe(ctx, b.channel)
	defer sub.Close()

	// Wait for the subscription confirmation so failures surface here.
	if _, err := sub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return errors.Join(ErrSubscribeFailed, err)
	}

	if err := b.loop.Do(ctx, func() {
		b.dispatcher.OnEstablish(b, b.dispatcher.PublishPath())
	}); err != nil {
		return b.exitErr(ctx, err)
	}
	defer func() {
		// The caller's ctx is likely done already.
		_ = b.loop.Post(context.WithoutCancel(ctx), func() { b.dispatcher.OnClose(b) })
	}()

	b.logger.InfoContext(ctx, "redis bridge subscribed",
		logger.Component("redis_bridge"),
		logger.ConnID(b.ID()),
	)

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return nil
			}
			payload := []byte(msg.Payload)
			if err := b.loop.Post(ctx, func() { b.forward(payload) }); err != nil {
				return b.exitErr(ctx, err)
			}
		}
	}
}

func (b *Bridge) forward(payload []byte) {
	err := b.dispatcher.OnMessage(b, payload)
	if err != nil && !errors.Is(err, broker.ErrNoSubscribers) && !errors.Is(err, broker.ErrBufferFull) {
		b.logger.Warn("redis bridge message rejected",
			logger.Component("redis_bridge"),
			logger.Error(err),
		)
	}
}

func (b *Bridge) exitErr(ctx context.Context, err error) error {
	if ctx.Err() != nil || errors.Is(err, broker.ErrLoopStopped) {
		return nil
	}
	return err
}
