package bootstrap

import (
	"log/slog"
	"os"
	"strings"
)

func NewLogger(env *Env) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLogLevel(env.LogLevel)}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(env.LogFormat), "json") {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(handler)
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
