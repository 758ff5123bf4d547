package logger

import (
	"context"
	"log/slog"
)

type ctxKey struct{}

// With returns a context carrying the given logger.
func With(ctx context.Context, lg *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, lg)
}

// From returns the logger stored in ctx, or the process-wide logger when
// none was attached.
func From(ctx context.Context) *slog.Logger {
	if lg, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return lg
	}
	return LoggerWrapper()
}
