// Package broker implements the message distribution core of a publish/subscribe
// broker: role classification, the event-driven Dispatcher and the Loop that
// serializes every event.
//
// A transport reports four events per connection and provides two
// primitives through the Conn interface:
//
//	OnEstablish(conn, target)  classify; subscribers get a cursor
//	OnMessage(conn, data)      publisher data into the ring, fan-out
//	OnWritable(conn)           next pending message to a subscriber
//	OnClose(conn)              drop the cursor, reclaim slots
//
//	conn.Write(p)              hand a message to the transport
//	conn.RequestWritable()     ask for a later OnWritable
//
// # Concurrency
//
// The Dispatcher is not safe for concurrent use. Transports submit every
// call through a Loop:
//
//	d, loop := broker.NewFromConfig(cfg, broker.WithLogger(log))
//	go loop.Run(ctx)
//
//	_ = loop.Do(ctx, func() { d.OnEstablish(conn, r.URL.Path) })
//
// # Backpressure
//
// The ring has a fixed number of slots shared by all subscribers. When the
// slowest subscriber is that many messages behind, new messages are dropped
// (ErrBufferFull) and logged; publishers are never blocked or told.
// Publishing with no subscribers connected is ignored (ErrNoSubscribers).
//
// # Ordering
//
// Messages from one publisher reach every subscriber in publish order.
// Messages from several publishers interleave in arrival order.
package broker
