// Package identity carries the authenticated caller through a request.
package identity

import "context"

const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

// Identity is whatever the external auth provider vouched for.
type Identity struct {
	UserID string
	Email  string
	Role   string
}

type ctxKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok && id.UserID != ""
}
