package broker

import (
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/wsbroker/core/logger"
	"github.com/dmitrymomot/wsbroker/pkg/broadcast"
)

type session struct {
	role   Role
	cursor *broadcast.Cursor[Conn]
}

// Dispatcher reacts to connection events and moves messages from publishers
// through the ring to subscribers.
//
// It holds no locks. Every method must be called from the same goroutine,
// normally through a Loop.
type Dispatcher struct {
	logger      *slog.Logger
	publishPath string
	capacity    int

	ring     *broadcast.Ring[Conn]
	sessions map[Conn]*session

	publishers int
	published  uint64
	delivered  uint64
	dropped    uint64
	ignored    uint64
}

// New creates a dispatcher with its own ring buffer.
// Defaults to an 8-slot ring, the "/publisher" path and a no-op logger.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		logger:      logger.Discard(),
		publishPath: DefaultPublishPath,
		capacity:    broadcast.DefaultCapacity,
		sessions:    make(map[Conn]*session),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.ring = broadcast.NewRing[Conn](d.capacity)
	return d
}

// OnEstablish classifies c by its request target and, for subscribers,
// attaches a cursor at the ring's oldest tail. A subscriber that joins with
// messages already retained gets a writable request. Establishing a known
// connection again returns its existing role.
func (d *Dispatcher) OnEstablish(c Conn, target string) Role {
	if s, ok := d.sessions[c]; ok {
		return s.role
	}

	s := &session{role: Classify(target, d.publishPath)}
	if s.role == RoleSubscriber {
		s.cursor = broadcast.NewCursor(d.ring.OldestTail(), c)
		d.ring.Attach(s.cursor)
		if d.ring.Pending(s.cursor) > 0 {
			// Late joiner: start draining the retained backlog now instead of
			// waiting for the next publish.
			c.RequestWritable()
		}
	} else {
		d.publishers++
	}
	d.sessions[c] = s

	d.logger.Debug("connection established",
		logger.ConnID(c.ID()),
		logger.Role(s.role.String()),
		logger.Path(target),
		logger.Tail(d.ring.OldestTail()),
	)
	return s.role
}

// OnMessage buffers data from a publisher and asks every subscriber for a
// write. data is copied before returning.
//
// A nil error means the message was accepted. ErrNoSubscribers and
// ErrBufferFull mean it was dropped; the publisher is not told.
func (d *Dispatcher) OnMessage(c Conn, data []byte) error {
	s, ok := d.sessions[c]
	if !ok {
		return ErrUnknownConn
	}
	if s.role != RolePublisher {
		return ErrNotPublisher
	}

	// Nobody is listening; buffering would only build up.
	if d.ring.Cursors().Len() == 0 {
		d.ignored++
		return ErrNoSubscribers
	}

	if !d.ring.Insert(data) {
		d.dropped++
		d.logger.Warn("dropping message, no more free space",
			logger.ConnID(c.ID()),
			logger.Bytes(len(data)),
			logger.Count("subscribers", d.ring.Cursors().Len()),
		)
		return ErrBufferFull
	}
	d.published++

	d.ring.Cursors().ForEach(func(cur *broadcast.Cursor[Conn]) bool {
		cur.Conn().RequestWritable()
		return true
	})
	return nil
}

// OnWritable writes the next pending message to a subscriber. Publishers,
// unknown connections and subscribers with nothing pending are a no-op.
//
// A returned error wraps ErrWriteFailed; the caller must close the
// connection. The cursor is not advanced in that case.
func (d *Dispatcher) OnWritable(c Conn) error {
	s, ok := d.sessions[c]
	if !ok || s.role != RoleSubscriber {
		return nil
	}

	slot, ok := d.ring.Peek(s.cursor)
	if !ok {
		return nil
	}

	n, err := c.Write(slot.Payload())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteFailed, err)
	}
	if n < slot.Len() {
		return fmt.Errorf("%w: short write %d of %d bytes", ErrWriteFailed, n, slot.Len())
	}

	d.ring.ConsumeAndAdvance(s.cursor)
	d.delivered++

	if d.ring.Pending(s.cursor) > 0 {
		c.RequestWritable()
	}
	return nil
}

// OnClose forgets c. A subscriber's cursor is detached, which may release
// slots only it was holding back. Later events for c are ignored.
func (d *Dispatcher) OnClose(c Conn) {
	s, ok := d.sessions[c]
	if !ok {
		return
	}
	delete(d.sessions, c)

	if s.role == RoleSubscriber {
		d.ring.Detach(s.cursor)
	} else {
		d.publishers--
	}

	d.logger.Debug("connection closed",
		logger.ConnID(c.ID()),
		logger.Role(s.role.String()),
	)
}

// Role returns the role c was established with.
func (d *Dispatcher) Role(c Conn) (Role, bool) {
	s, ok := d.sessions[c]
	if !ok {
		return RoleSubscriber, false
	}
	return s.role, true
}

// Close releases every buffered message. Subscribers still registered see
// nothing pending afterwards and publishers' messages are rejected as
// ErrBufferFull.
func (d *Dispatcher) Close() {
	d.ring.Close()
}

// PublishPath returns the request target that classifies a publisher. It is
// fixed at construction and safe to call from any goroutine.
func (d *Dispatcher) PublishPath() string {
	return d.publishPath
}
