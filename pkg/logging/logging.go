// Package logging configures structured logging for messledger binaries.
//
// Usage:
//
//	logging.Setup("info", "text")           // colored output via tint
//	logging.Setup("debug", "json")          // JSON lines for the server
//	logging.SetupWithLevel(slog.LevelDebug) // explicit level, colored
//
// Levels: debug, info, warn, error (default: info).
// Formats: text (tint, colored) and json.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup installs the default logger writing to stderr.
func Setup(level, format string) {
	slog.SetDefault(New(os.Stderr, ParseLevel(level), format))
}

// SetupWithLevel configures colored logging at the given level.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, "text"))
}

// New builds a logger for w. Unknown formats fall back to text.
func New(w io.Writer, level slog.Level, format string) *slog.Logger {
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
		}))
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
		NoColor:    !isTerminal(w),
	}))
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
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

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}
