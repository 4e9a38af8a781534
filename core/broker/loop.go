package broker

import (
	"context"
	"errors"
	"sync/atomic"
)

// DefaultLoopBuffer is the event queue size used when NewLoop gets a
// non-positive size.
const DefaultLoopBuffer = 256

// ErrLoopRunning is returned by Run when the loop is already running or has
// already exited.
var ErrLoopRunning = errors.New("broker loop already started")

// Loop runs submitted functions one at a time on a single goroutine. Every
// function finishes before the next one starts, which is what lets the
// Dispatcher and the ring go without locks.
type Loop struct {
	events  chan func()
	done    chan struct{}
	started atomic.Bool
}

// NewLoop creates a loop with a queue of the given size.
func NewLoop(buffer int) *Loop {
	if buffer <= 0 {
		buffer = DefaultLoopBuffer
	}
	return &Loop{
		events: make(chan func(), buffer),
		done:   make(chan struct{}),
	}
}

// Run processes events until ctx is canceled. Cancellation is a normal stop
// and returns nil; functions still queued at that point are discarded.
// Run may be called once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.started.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return nil
		case fn := <-l.events:
			fn()
		}
	}
}

// Post queues fn without waiting for it to run. It blocks while the queue is
// full, until ctx is done or the loop exits.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case <-l.done:
		return ErrLoopStopped
	default:
	}

	select {
	case l.events <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Do queues fn and waits until it has run.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	if err := l.Post(ctx, func() {
		defer close(finished)
		fn()
	}); err != nil {
		return err
	}

	select {
	case <-finished:
		return nil
	case <-l.done:
		// The loop may have run fn right before exiting.
		select {
		case <-finished:
			return nil
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed once Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
