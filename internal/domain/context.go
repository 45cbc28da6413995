package domain

import "context"

type requestIDKey struct{}

// WithRequestID returns a context that carries id. The gateway sends it as
// the X-Request-ID header so backend logs can be matched to a mutation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFrom returns the request ID carried by ctx, if any.
func RequestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
