package offsetgrid

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with offsetgrid-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithRow adds a row field to the logger.
func (l *Logger) WithRow(row int) *Logger {
	return &Logger{
		Logger: l.Logger.With("row", row),
	}
}

// WithRange adds min/max window fields to the logger.
func (l *Logger) WithRange(minIdx, maxIdx int) *Logger {
	return &Logger{
		Logger: l.Logger.With("min", minIdx, "max", maxIdx),
	}
}

// LogSave logs a matrix save operation.
func (l *Logger) LogSave(ctx context.Context, name string, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "save completed",
			"name", name,
			"cells", cells,
		)
	}
}

// LogLoad logs a matrix load operation.
func (l *Logger) LogLoad(ctx context.Context, name string, rows, cells int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "load completed",
			"name", name,
			"rows", rows,
			"cells", cells,
		)
	}
}
