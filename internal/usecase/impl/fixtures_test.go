package impl

import (
	"log/slog"
	"time"

	"nexus/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// newTestConfig returns the smallest config the usecases read: a session lifetime.
func newTestConfig(sessionTTL time.Duration) *config.Config {
	return &config.Config{
		Session: &config.SessionConfig{TTL: sessionTTL},
	}
}
