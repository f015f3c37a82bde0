package main

import (
	"log/slog"
	"os"

	"github.com/agentforge/agentforge/src/config"
	"github.com/lmittmann/tint"
)

// newLogger builds the process logger from config. Text output goes
// through tint for readable terminal logs; json is for log collectors.
func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := parseLogLevel(cfg.Level)

	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		}))
	}

	return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: level,
	}))
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch levelStr {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
