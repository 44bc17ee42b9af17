package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextRunIDKey ctxKey = "syncRunID"

func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if runID, ok := ctx.Value(ContextRunIDKey).(string); ok {
		return runID
	}
	return ""
}

func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextRunIDKey, runID)
}

// WithTimeout returns a context with timeout, defaulting to 5 seconds if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = 5 * time.Second
	}
	return context.WithTimeout(ctx, duration)
}
