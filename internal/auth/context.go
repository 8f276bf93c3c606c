// Package auth verifies bearer tokens from the hosted auth provider and
// carries the acting user id through the request context.
package auth

import (
	"context"
	"errors"
)

// ErrNoIdentity is returned when a request context has no authenticated user.
var ErrNoIdentity = errors.New("no authenticated user")

type userIDKey struct{}

// WithUserID returns ctx carrying the acting user id.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the acting user id stored by the interceptor.
func UserID(ctx context.Context) (string, error) {
	id, ok := ctx.Value(userIDKey{}).(string)
	if !ok || id == "" {
		return "", ErrNoIdentity
	}
	return id, nil
}
