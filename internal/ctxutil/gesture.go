// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import (
	"context"

	"github.com/google/uuid"
)

// GestureKey is the context key for the gesture correlation id.
type GestureKey struct{}

// WithGestureID returns a context carrying a fresh gesture id, unless one is already set.
func WithGestureID(ctx context.Context) (context.Context, string) {
	if id := GestureFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return context.WithValue(ctx, GestureKey{}, id), id
}

// GestureFromContext returns the gesture id from context, or empty string if not set.
func GestureFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(GestureKey{}).(string); ok {
		return v
	}
	return ""
}
