package broker

// Conn is what the dispatcher needs from a transport connection.
//
// Write hands a complete message to the transport. Returning fewer bytes than
// len(p), or an error, is fatal for the connection. RequestWritable asks the
// transport to call Dispatcher.OnWritable for this connection later; repeated
// requests before that callback may be coalesced. Neither method may block on
// network I/O.
type Conn interface {
	ID() string
	Write(p []byte) (int, error)
	RequestWritable()
}
