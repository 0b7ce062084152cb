package logging

import (
	"io"
	"log/slog"
)

// LogFormat defines the output format of the logger.
type LogFormat string

const (
	LogFormatText LogFormat = "text" // plain text output
	LogFormatJSON LogFormat = "json" // structured JSON output
)

// SetupLogger returns a slog.Logger writing to w in the requested
// format. Debug enables debug-level records, otherwise info is the floor.
func SetupLogger(format LogFormat, debug bool, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	switch format {
	case LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}
