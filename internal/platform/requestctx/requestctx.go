// Package requestctx carries the correlation ID that every Dayflow response
// envelope echoes back as requestId.
package requestctx

import "context"

type ctxKey struct{}

// WithRequestID tags a request-scoped context with its correlation ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the correlation ID, or "" for contexts created outside
// the HTTP request path (jobs, seeding, tests).
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
