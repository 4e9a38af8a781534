package main

import (
	"github.com/dmitrymomot/wsbroker/core/broker"
	"github.com/dmitrymomot/wsbroker/core/server"
	"github.com/dmitrymomot/wsbroker/core/wstransport"
	"github.com/dmitrymomot/wsbroker/integration/redis"
)

type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"wsbroker"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"`

	Broker    broker.Config
	WebSocket wstransport.Config
	Server    server.Config
	Redis     redis.Config
}
