package middleware

import (
	"context"

	"github.com/angelmondragon/storefront/internal/sessions"
)

type contextKey string

const ctxVisitor contextKey = "visitor"

// VisitorFromContext returns the visitor attached by the Session middleware.
func VisitorFromContext(ctx context.Context) *sessions.Visitor {
	if ctx == nil {
		return nil
	}
	if v, ok := ctx.Value(ctxVisitor).(*sessions.Visitor); ok {
		return v
	}
	return nil
}

// VisitorIDFromContext returns the attached visitor's id or "".
func VisitorIDFromContext(ctx context.Context) string {
	if v := VisitorFromContext(ctx); v != nil {
		return v.ID
	}
	return ""
}

// WithVisitor injects the visitor into the context for downstream handlers.
func WithVisitor(ctx context.Context, v *sessions.Visitor) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxVisitor, v)
}
