package logger

import (
	"log/slog"
	"time"
)

// Attribute helpers use the empty Attr pattern for nil safety.
// This allows calls like log.Info("msg", logger.Error(err)) without explicit nil checks.

// Group creates a group of attributes under a single key.
func Group(name string, attrs ...slog.Attr) slog.Attr {
	return slog.Attr{Key: name, Value: slog.GroupValue(attrs...)}
}

// ============================================================================
// Error Handling
// ============================================================================

// Error creates an attribute for a single error under the key "error".
// Returns empty Attr for nil errors, enabling safe usage without nil checks.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// ============================================================================
// Timing
// ============================================================================

// Duration creates an attribute for a duration.
func Duration(d time.Duration) slog.Attr {
	return slog.Duration("duration", d)
}

// ============================================================================
// Network
// ============================================================================

// Path creates an attribute for URL paths.
func Path(path string) slog.Attr {
	return slog.String("path", path)
}

// ClientIP creates an attribute for client IP addresses.
func ClientIP(ip string) slog.Attr {
	if ip == "" {
		return slog.Attr{}
	}
	return slog.String("client_ip", ip)
}

// ============================================================================
// Broker
// ============================================================================

// ConnID creates an attribute for a connection identifier.
func ConnID(id string) slog.Attr {
	if id == "" {
		return slog.Attr{}
	}
	return slog.String("conn_id", id)
}

// Role creates an attribute for a connection role.
func Role(role string) slog.Attr {
	return slog.String("role", role)
}

// Tail creates an attribute for a ring position.
func Tail(pos uint64) slog.Attr {
	return slog.Uint64("tail", pos)
}

// Bytes creates an attribute for a payload size.
func Bytes(n int) slog.Attr {
	return slog.Int("bytes", n)
}

// ============================================================================
// Generic Metadata
// ============================================================================

// Component creates an attribute for component names.
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event creates an attribute for event names.
func Event(name string) slog.Attr {
	return slog.String("event", name)
}

// Count creates a generic counter attribute.
func Count(key string, n int) slog.Attr {
	return slog.Int(key, n)
}
