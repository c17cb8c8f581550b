package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns a structured logger writing to stdout. format "text" selects a
// human-readable handler, anything else JSON.
func New(format string) *slog.Logger {
	return NewWithWriter(os.Stdout, format)
}

// NewWithWriter is New with an explicit sink.
func NewWithWriter(w io.Writer, format string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
