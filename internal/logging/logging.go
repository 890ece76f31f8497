package logging

import (
	"log/slog"
	"os"
)

// NewLogger returns the structured logger used across the tool.
// Verbose switches the level from Info to Debug. Output goes to stderr
// so log lines never interleave with the results table on stdout.
func NewLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return slog.New(handler)
}
