// Package logging wraps log/slog with the field names used across the
// distance and patch pipeline.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"
)

// Logger wraps slog.Logger with pipeline-specific helpers.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// OrNoop returns l, or a discarding logger when l is nil.
func OrNoop(l *Logger) *Logger {
	if l == nil {
		return NoopLogger()
	}
	return l
}

// ParseLevel maps "debug", "info", "warn" and "error" (any case) to a slog level.
// An empty string means info.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("logging: unknown level %q", s)
	}
}

// WithComponent tags every record with the emitting component.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("component", name),
	}
}

// WithVertices adds a vertex count field to the logger.
func (l *Logger) WithVertices(n int) *Logger {
	return &Logger{
		Logger: l.Logger.With("vertices", n),
	}
}

// LogMatrixProgress logs one finished single-source run of a matrix build.
func (l *Logger) LogMatrixProgress(ctx context.Context, done, total int) {
	percent := 100.0
	if total > 0 {
		percent = float64(done) * 100 / float64(total)
	}
	l.DebugContext(ctx, "distance row computed",
		"done", done,
		"total", total,
		"percent", fmt.Sprintf("%.1f", percent),
	)
}

// LogMatrixBuilt logs the end of a matrix build.
func (l *Logger) LogMatrixBuilt(ctx context.Context, n int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "distance matrix build failed",
			"vertices", n,
			"elapsed", elapsed,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "distance matrix built",
			"vertices", n,
			"elapsed", elapsed,
		)
	}
}

// LogPatchesBuilt logs the end of a batch patch build.
func (l *Logger) LogPatchesBuilt(ctx context.Context, vertices, patchCount int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "patch build failed",
			"vertices", vertices,
			"patch_count", patchCount,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "patches built",
			"vertices", vertices,
			"patch_count", patchCount,
			"elapsed", elapsed,
		)
	}
}

// LogSave logs a persistence write.
func (l *Logger) LogSave(ctx context.Context, what, path string, err error) {
	if err != nil {
		l.ErrorContext(ctx, what+" save failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, what+" saved",
			"path", path,
		)
	}
}

// LogLoad logs a persistence read.
func (l *Logger) LogLoad(ctx context.Context, what, path string, err error) {
	if err != nil {
		l.WarnContext(ctx, what+" load failed",
			"path", path,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, what+" loaded",
			"path", path,
		)
	}
}
