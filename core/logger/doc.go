// Package logger builds log/slog loggers and provides attribute helpers for
// the broker's structured logs.
//
// # Basic Usage
//
//	log := logger.New(
//		logger.WithDevelopment("wsbroker"),
//		logger.WithLevel(slog.LevelDebug),
//	)
//
//	log.Info("subscriber connected",
//		logger.Component("broker"),
//		logger.ConnID(id),
//		logger.Tail(cursor.Tail()),
//	)
//
// # Environment Configurations
//
//	// Development: text format, debug level, stdout
//	devLogger := logger.New(logger.WithDevelopment("wsbroker"))
//
//	// Production: JSON format, info level, stdout
//	prodLogger := logger.New(logger.WithProduction("wsbroker"))
//
//	// Chosen from APP_ENV
//	log := logger.New(logger.WithEnvironment(os.Getenv("APP_ENV"), "wsbroker"))
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil or empty input, which slog skips,
// so they can be passed unconditionally:
//
//	log.Warn("dropping message", logger.Error(err), logger.Bytes(len(data)))
package logger
