// Package logging configures structured logging on top of log/slog.
// Local development gets colored tint output; deployments can switch to
// JSON with LOG_FORMAT=json.
package logging

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures the default slog logger from the given level and format
// strings ("debug"/"info"/"warn"/"error", "text"/"json").
func Setup(level, format string) {
	SetupWithLevel(parseLevel(level), format)
}

// SetupWithLevel configures the default slog logger at an explicit level.
func SetupWithLevel(level slog.Level, format string) {
	var handler slog.Handler
	if strings.EqualFold(format, "json") {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
			AddSource:  true,
		})
	}
	slog.SetDefault(slog.New(handler))
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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
