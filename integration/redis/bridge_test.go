package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/integration/redis"
)

func TestNewBridge(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"})
	t.Cleanup(func() { _ = client.Close() })

	d := broker.New()
	loop := broker.NewLoop(8)

	t.Run("requires channel", func(t *testing.T) {
		t.Parallel()
		b, err := redis.NewBridge(client, "", loop, d)
		require.ErrorIs(t, err, redis.ErrEmptyChannel)
		assert.Nil(t, b)
	})

	t.Run("is a publisher connection", func(t *testing.T) {
		t.Parallel()
		b, err := redis.NewBridge(client, "news", loop, d)
		require.NoError(t, err)
		assert.Equal(t, "redis:news", b.ID())

		var _ broker.Conn = b
		n, err := b.Write([]byte("ignored"))
		require.NoError(t, err)
		assert.Equal(t, 7, n)
	})
}

func TestBridge_RegistersAsPublisher(t *testing.T) {
	t.Parallel()

	d := broker.New()
	b, err := redis.NewBridge(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1"}), "news", broker.NewLoop(8), d)
	require.NoError(t, err)

	// The bridge establishes itself with the dispatcher's publish path.
	role := d.OnEstablish(b, d.PublishPath())
	assert.Equal(t, broker.RolePublisher, role)

	sub := &nopConn{id: "sub"}
	d.OnEstablish(sub, "/")
	require.NoError(t, d.OnMessage(b, []byte("hello")))
	assert.Equal(t, 1, sub.wanted)
	assert.Equal(t, uint64(1), d.Stats().Published)
}

func TestBridge_RunFailsWithoutServer(t *testing.T) {
	t.Parallel()

	client := goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })

	b, err := redis.NewBridge(client, "news", broker.NewLoop(8), broker.New())
	require.NoError(t, err)

	err = b.Run(context.Background())
	assert.ErrorIs(t, err, redis.ErrSubscribeFailed)
}

type nopConn struct {
	id     string
	wanted int
}

func (c *nopConn) ID() string                  { return c.id }
func (c *nopConn) Write(p []byte) (int, error) { return len(p), nil }
func (c *nopConn) RequestWritable()            { c.wanted++ }

type recordConn struct {
	id  string
	got []string
}

func (c *recordConn) ID() string { return c.id }
func (c *recordConn) Write(p []byte) (int, error) {
	c.got = append(c.got, string(p))
	return len(p), nil
}
func (c *recordConn) RequestWritable() {}

func TestBridge_Run(t *testing.T) {
	t.Parallel()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), Protocol: 2})
	t.Cleanup(func() { _ = client.Close() })

	d := broker.New(broker.WithCapacity(16))
	loop := broker.NewLoop(16)
	loopCtx, stopLoop := context.WithCancel(context.Background())
	go func() { _ = loop.Run(loopCtx) }()
	t.Cleanup(func() {
		stopLoop()
		<-loop.Done()
	})

	stats := func() broker.Stats {
		var st broker.Stats
		require.NoError(t, loop.Do(context.Background(), func() { st = d.Stats() }))
		return st
	}

	sub := &recordConn{id: "sub"}
	require.NoError(t, loop.Do(context.Background(), func() { d.OnEstablish(sub, "/") }))

	b, err := redis.NewBridge(client, "news", loop, d)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- b.Run(ctx) }()

	// Registration happens only after the subscription is confirmed.
	require.Eventually(t, func() bool { return stats().Publishers == 1 }, 2*time.Second, 5*time.Millisecond)

	want := []string{"m0", "m1", "m2"}
	for _, m := range want {
		assert.Equal(t, 1, mr.Publish("news", m))
	}
	require.Eventually(t, func() bool { return stats().Published == uint64(len(want)) }, 2*time.Second, 5*time.Millisecond)

	var writeErr error
	require.NoError(t, loop.Do(context.Background(), func() {
		for range want {
			if err := d.OnWritable(sub); err != nil {
				writeErr = err
				return
			}
		}
	}))
	require.NoError(t, writeErr)
	assert.Equal(t, want, sub.got)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("bridge did not stop")
	}
	require.Eventually(t, func() bool { return stats().Publishers == 0 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, stats().Subscribers)
}
