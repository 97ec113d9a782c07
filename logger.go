package kmeans

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithDimension adds the active dimension count to the logger.
func (l *Logger) WithDimension(ndim int) *Logger {
	return &Logger{
		Logger: l.Logger.With("ndim", ndim),
	}
}

// WithSeed adds the initialization seed to the logger.
func (l *Logger) WithSeed(seed uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogIteration logs a completed assignment/update round.
func (l *Logger) LogIteration(ctx context.Context, iteration int, shift, inertia float64) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"shift", shift,
		"inertia", inertia,
	)
}

// LogRun logs the outcome of a clustering run.
func (l *Logger) LogRun(ctx context.Context, points, iterations int, phase Phase, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "clustering failed",
			"points", points,
			"iterations", iterations,
			"error", err,
		)
	case phase == PhaseMaxIterReached:
		l.WarnContext(ctx, "clustering stopped at iteration cap",
			"points", points,
			"iterations", iterations,
		)
	default:
		l.InfoContext(ctx, "clustering converged",
			"points", points,
			"iterations", iterations,
		)
	}
}
