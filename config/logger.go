package config

import (
	"log/slog"
	"os"
	"strings"
)

// NewLogger builds the process logger for the given environment. Production
// emits JSON lines; everything else gets the text handler. LOG_LEVEL picks the
// minimum level (debug, info, warn, error), defaulting to info.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(os.Getenv("LOG_LEVEL"))}
	if env == "production" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
