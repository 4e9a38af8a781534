package wstransport

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// conn adapts a websocket connection to broker.Conn.
//
// The write pump is the only goroutine that writes data frames. When woken by
// RequestWritable it runs the dispatcher's OnWritable on the loop and waits
// for it, so at most one message sits in the outbox at any time.
type conn struct {
	id   string
	ws   *websocket.Conn
	addr string

	wake   chan struct{}
	outbox chan []byte

	ctx       context.Context
	cancel    context.CancelFunc
	closed    chan struct{}
	closeOnce sync.Once
}

func newConn(ctx context.Context, id, addr string, ws *websocket.Conn) *conn {
	ctx, cancel := context.WithCancel(ctx)
	return &conn{
		id:     id,
		ws:     ws,
		addr:   addr,
		wake:   make(chan struct{}, 1),
		outbox: make(chan []byte, 1),
		ctx:    ctx,
		cancel: cancel,
		closed: make(chan struct{}),
	}
}

func (c *conn) ID() string {
	return c.id
}

// Write queues p for the write pump. It never blocks; a busy outbox is
// reported as a zero-length write, which the dispatcher treats as fatal.
func (c *conn) Write(p []byte) (int, error) {
	select {
	case <-c.closed:
		return 0, ErrConnClosed
	default:
	}

	select {
	case c.outbox <- p:
		return len(p), nil
	default:
		return 0, nil
	}
}

// RequestWritable wakes the write pump. Requests made while one is pending
// collapse into one.
func (c *conn) RequestWritable() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
}

// close tears the connection down once. It is safe from any goroutine.
func (c *conn) close(code int, reason string) {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.cancel()
		deadline := time.Now().Add(time.Second)
		_ = c.ws.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), deadline)
		_ = c.ws.Close()
	})
}

func (c *conn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}
