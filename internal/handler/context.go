package handlers

import (
	"context"
	"socialhub/internal/models"
)

type contextKey struct{}

var userContextKey = contextKey{}

func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func CurrentUser(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userContextKey).(*models.User)
	return user, ok && user != nil
}
