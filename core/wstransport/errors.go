package wstransport

import "errors"

// ErrConnClosed is returned by writes to a connection that has been torn down.
var ErrConnClosed = errors.New("websocket connection closed")
