package logger

import (
	"log/slog"
	"os"
)

// Setup installs the global slog logger for env.
// production: JSON, info / local, dev: text, debug / test: text, warn
func Setup(env string) {
	level := LevelFor(env)
	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch env {
	case "production", "prod":
		handler = slog.NewJSONHandler(os.Stdout, opts)
	default:
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
	slog.Info("Logger 초기화", "env", env, "level", level.String())
}

// LevelFor returns the minimum log level used in env
func LevelFor(env string) slog.Level {
	switch env {
	case "local", "dev", "development":
		// query executor logs every condition at debug
		return slog.LevelDebug
	case "test":
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
