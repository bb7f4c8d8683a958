// Package log holds the process-wide slog logger. Components call the
// package helpers; main calls Init once with the configured level.
package log

import (
	"io"
	"log/slog"
	"os"
	"sync"
)

var (
	logger *slog.Logger
	once   sync.Once
)

// Init installs the global logger at level ("debug", "info", "warn" or
// "error"). Only the first call has an effect.
func Init(level string) {
	once.Do(func() {
		logger = slog.New(newHandler(os.Stdout, parseLevel(level), os.Getenv("GO_ENV") == "production"))
		slog.SetDefault(logger)
	})
}

func newHandler(w io.Writer, level slog.Level, structured bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if structured {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

func parseLevel(level string) slog.Level {
	switch level {
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

// L returns the global logger, installing an info-level one on first use.
func L() *slog.Logger {
	Init("info")
	return logger
}

func Debug(msg string, args ...any) { L().Debug(msg, args...) }
func Info(msg string, args ...any)  { L().Info(msg, args...) }
func Warn(msg string, args ...any)  { L().Warn(msg, args...) }
func Error(msg string, args ...any) { L().Error(msg, args...) }

// With returns a child logger carrying args on every record, e.g. the id
// of the spawn being reported.
func With(args ...any) *slog.Logger {
	return L().With(args...)
}
