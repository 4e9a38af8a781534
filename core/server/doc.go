// Package server runs the broker's HTTP listener with graceful shutdown.
//
// It wraps http.Server, binds the listener itself so the bound address is
// known (useful with ":0"), and exposes an errgroup-friendly Run:
//
//	srv, err := server.NewFromConfig(cfg.Server,
//		server.WithLogger(log),
//		server.WithOnShutdown(ws.CloseAll),
//	)
//	if err != nil {
//		return err
//	}
//	eg.Go(srv.Run(ctx, mux))
//
// Websocket connections are hijacked and therefore not tracked by
// http.Server.Shutdown. Register their owner's close function with
// WithOnShutdown so shutdown reaches them.
//
// Configuration is read from SERVER_* environment variables through Config;
// the default listen address is ":9000".
package server
