package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Level reads LOG_LEVEL (debug, info, warn, error). Anything else is info.
func Level() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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

// StdoutHandler is the JSON handler for process output, tagged with the
// service name.
func StdoutHandler(w io.Writer) slog.Handler {
	return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: Level()}).
		WithAttrs([]slog.Attr{slog.String("service", "auranote")})
}

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(slog.New(StdoutHandler(os.Stdout)))
}
