package ccgchart

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/ccgchart/core"
)

// Logger wraps slog.Logger with chart-specific context.
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

// WithSpan adds span fields to the logger.
func (l *Logger) WithSpan(span core.Span) *Logger {
	return &Logger{
		Logger: l.Logger.With("span_start", span.Start, "span_end", span.End),
	}
}

// WithPolicy adds a policy field to the logger.
func (l *Logger) WithPolicy(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("policy", name),
	}
}

// LogFinalize logs a span finalization.
func (l *Logger) LogFinalize(span core.Span, before, after int, duration time.Duration) {
	l.Debug("span finalized",
		"span", span.String(),
		"proposals", before,
		"entries", after,
		"duration", duration,
	)
}

// LogClear logs a span being cleared.
func (l *Logger) LogClear(span core.Span, removed int) {
	l.Debug("span cleared",
		"span", span.String(),
		"removed", removed,
	)
}

// LogTerminalHook logs the one-time terminal restriction.
func (l *Logger) LogTerminalHook(before, after int, err error) {
	if err != nil {
		l.Error("terminal hook failed",
			"error", err,
		)
		return
	}
	l.Debug("terminal hook applied",
		"entries_before", before,
		"entries_after", after,
	)
}

// LogDecode logs a decode operation.
func (l *Logger) LogDecode(span core.Span, k, found int, err error) {
	if err != nil {
		l.Error("decode failed",
			"span", span.String(),
			"k", k,
			"error", err,
		)
	} else {
		l.Debug("decode completed",
			"span", span.String(),
			"k", k,
			"parses", found,
		)
	}
}

// LogSnapshot logs a snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, name string, entries int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"name", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot completed",
			"name", name,
			"entries", entries,
		)
	}
}
