package api

import (
	"context"

	"github.com/boksu/booksum/internal/server/auth"
)

type contextKey int

const identityKey contextKey = iota

// WithIdentity attaches a verified identity to the request context.
func WithIdentity(ctx context.Context, id *auth.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the verified identity attached by the
// authentication middleware.
func IdentityFromContext(ctx context.Context) (*auth.Identity, bool) {
	id, ok := ctx.Value(identityKey).(*auth.Identity)
	return id, ok
}
