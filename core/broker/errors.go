package broker

import "errors"

// Message rejection reasons. None of them is fatal to the broker; the
// transport may log them but should keep the publisher connected.
var (
	ErrNoSubscribers = errors.New("no subscribers connected")
	ErrBufferFull    = errors.New("ring buffer full")
	ErrNotPublisher  = errors.New("connection is not a publisher")
	ErrUnknownConn   = errors.New("unknown connection")
)

// ErrWriteFailed wraps write errors and short writes. It is fatal to the
// connection it was returned for and nothing else.
var ErrWriteFailed = errors.New("write to subscriber failed")

// ErrLoopStopped is returned when submitting work to a loop that has exited.
var ErrLoopStopped = errors.New("broker loop stopped")
