// Context utilities for the authentication middleware. The authenticated
// user travels through the request context as an immutable value; handlers
// read it back through a typed helper instead of touching context keys
// directly.
package auth

import (
	"context"
)

// contextKey is a custom type for context keys, preventing collisions with
// keys defined in other packages.
type contextKey string

const userContextKey contextKey = "auth_user"

// NewContextWithUser returns a child context carrying the authenticated user.
// The user is stored by value so downstream handlers cannot mutate the
// identity seen by other parts of the request.
func NewContextWithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// UserFromContext extracts the authenticated user from the context. The
// second return value reports whether a user was attached, i.e. whether the
// request passed the authentication middleware.
func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userContextKey).(User)
	return user, ok
}
