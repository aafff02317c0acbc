// Package requestcontext carries request-scoped values (request ID and
// request time) through context so services and stores can read them
// without depending on net/http.
package requestcontext

import (
	"context"
	"time"
)

type scopeKey struct{}

// scope is copied on every write; contexts never share a mutable value.
type scope struct {
	requestID string
	at        time.Time
}

func current(ctx context.Context) scope {
	if sc, ok := ctx.Value(scopeKey{}).(scope); ok {
		return sc
	}
	return scope{}
}

// RequestID returns the request ID, or "" outside a request.
func RequestID(ctx context.Context) string {
	return current(ctx).requestID
}

// WithRequestID returns a context carrying requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	sc := current(ctx)
	sc.requestID = requestID
	return context.WithValue(ctx, scopeKey{}, sc)
}

// Now returns the time the request was received. Outside a request (batch
// work, tests without middleware) it falls back to the wall clock.
func Now(ctx context.Context) time.Time {
	if at := current(ctx).at; !at.IsZero() {
		return at
	}
	return time.Now()
}

// WithTime pins the request time.
func WithTime(ctx context.Context, t time.Time) context.Context {
	sc := current(ctx)
	sc.at = t
	return context.WithValue(ctx, scopeKey{}, sc)
}

// LogFields returns the request attributes for slog calls, empty when the
// context carries no request ID.
func LogFields(ctx context.Context) []any {
	if id := RequestID(ctx); id != "" {
		return []any{"request_id", id}
	}
	return nil
}
