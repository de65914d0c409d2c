package commons

import (
	"context"

	"github.com/google/uuid"
)

type traceIDKey struct{}

// WithTraceID stores the request trace id used in logs, responses and the
// scan log.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, traceIDKey{}, traceID)
}

// TraceID returns the id stored by WithTraceID, or a fresh one.
func TraceID(ctx context.Context) string {
	if id, ok := ctx.Value(traceIDKey{}).(string); ok && id != "" {
		return id
	}
	return uuid.New().String()
}
