// Package wstransport connects websocket clients to a broker dispatcher.
//
// Handler is an http.Handler. Each upgraded connection is classified by its
// request path (the configured publish path makes a publisher, anything else
// a subscriber) and then served by two goroutines:
//
//   - the read pump forwards publisher messages to Dispatcher.OnMessage and
//     discards subscriber data frames
//   - the write pump turns RequestWritable wake-ups into Dispatcher.OnWritable
//     calls and writes the resulting frame with a deadline
//
// Both pumps touch the dispatcher only through the broker loop. A failed
// write, failed read or close frame tears the connection down and delivers
// OnClose exactly once.
//
// Usage:
//
//	d, loop := broker.NewFromConfig(cfg.Broker)
//	go loop.Run(ctx)
//
//	ws := wstransport.New(loop, d,
//		wstransport.WithAllowAnyOrigin(),
//		wstransport.WithPingInterval(30*time.Second),
//	)
//	mux.Handle("/", ws)
//
// http.Server.Shutdown leaves hijacked connections alone; call
// Handler.CloseAll during shutdown.
package wstransport
