package orion

import (
	"log/slog"
	"os"
	"strings"
)

// ConfigureLogging sets the level of the default logger from
// the GL2D_LOG_LEVEL environment variable.
func ConfigureLogging() {
	level := parseLevel(os.Getenv("GL2D_LOG_LEVEL"))
	slog.SetLogLoggerLevel(level)
}

func parseLevel(value string) slog.Level {
	switch strings.ToUpper(value) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
