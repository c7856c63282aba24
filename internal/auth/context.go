package auth

import (
	"context"

	"github.com/prtracker/prtracker/internal/users"
)

type contextKey string

const userKey contextKey = "authenticated-user"

// WithUser stores the authenticated user on the context.
func WithUser(ctx context.Context, user *users.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext retrieves the user stored by WithUser.
func UserFromContext(ctx context.Context) (*users.User, bool) {
	user, ok := ctx.Value(userKey).(*users.User)
	return user, ok
}
