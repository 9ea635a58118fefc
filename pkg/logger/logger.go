package logger

import (
	"log/slog"
	"os"
)

var Log *slog.Logger

func init() {
	// Usable before Init is called (tests, early startup)
	Log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

// Init configures the process logger. Debug output is only enabled outside production.
func Init(service string, production bool) {
	level := slog.LevelDebug
	if production {
		level = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	Log = slog.New(handler).With("service", service)
}
