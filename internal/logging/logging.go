// Package logging configures the process-wide slog default logger
// from LOG_LEVEL, the same key/value style the fleet logs with
// throughout (slog.Info/slog.Error calls with structured attrs).
package logging

import (
	"log/slog"
	"os"
)

// Configure installs a text-handler slog logger at the given level as
// the process default. Unrecognized levels fall back to info.
func Configure(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
