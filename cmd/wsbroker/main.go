package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/core/config"
	"github.com/dmitrymomot/wsbroker/core/health"
	"github.com/dmitrymomot/wsbroker/core/logger"
	"github.com/dmitrymomot/wsbroker/core/server"
	"github.com/dmitrymomot/wsbroker/core/wstransport"
	"github.com/dmitrymomot/wsbroker/integration/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	logOpts := []logger.Option{logger.WithEnvironment(cfg.AppEnv, cfg.AppName)}
	if cfg.LogLevel != "" {
		logOpts = append(logOpts, logger.WithLevel(logger.ParseLevel(cfg.LogLevel)))
	}
	log := logger.New(logOpts...)

	dispatcher, loop := broker.NewFromConfig(cfg.Broker, broker.WithLogger(log.With(logger.Component("broker"))))
	defer dispatcher.Close()

	ws := wstransport.New(loop, dispatcher,
		append(cfg.WebSocket.Options(), wstransport.WithLogger(log.With(logger.Component("wstransport"))))...,
	)

	checks := []health.Check{health.LoopCheck(loop)}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return loop.Run(ctx) })

	// Redis is optional; without REDIS_URL only websocket publishers exist.
	if cfg.Redis.Enabled() {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		defer client.Close()

		bridge, err := redis.NewBridge(client, cfg.Redis.Channel, loop, dispatcher,
			redis.WithLogger(log.With(logger.Component("redis_bridge"))),
		)
		if err != nil {
			log.Error("Failed to create redis bridge", logger.Component("redis"), logger.Error(err))
			os.Exit(1)
		}
		eg.Go(func() error { return bridge.Run(ctx) })
		checks = append(checks, redis.Healthcheck(client))
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health/live", health.Liveness)
	mux.Handle("GET /health/ready", health.Readiness(log, checks...))
	mux.Handle("GET /stats", health.Stats(log, loop, dispatcher))
	// Every other path is a websocket endpoint; the path decides the role.
	mux.Handle("/", ws)

	s, err := server.NewFromConfig(cfg.Server,
		server.WithLogger(log),
		server.WithOnShutdown(ws.CloseAll),
	)
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}
	eg.Go(s.Run(ctx, mux))

	log.Info("Broker started",
		logger.Path(dispatcher.PublishPath()),
		logger.Count("ring_capacity", cfg.Broker.RingCapacity),
	)

	if err := eg.Wait(); err != nil {
		log.Error("Broker stopped with error", logger.Error(err))
		os.Exit(1)
	}

	log.Info("Broker stopped")
}
