package handlers

import (
	"context"

	"github.com/google/uuid"

	"github.com/HammerMeetNail/vibenet/internal/models"
	"github.com/HammerMeetNail/vibenet/internal/services"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	claimsContextKey contextKey = "token_claims"
)

func SetUserInContext(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

func GetUserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userContextKey).(*models.User)
	return user
}

// SetClaimsInContext stores the bearer token claims so logout can revoke them.
func SetClaimsInContext(ctx context.Context, claims *services.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func GetClaimsFromContext(ctx context.Context) *services.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*services.Claims)
	return claims
}

// viewerID returns the authenticated user's id, or uuid.Nil for anonymous requests.
func viewerID(ctx context.Context) uuid.UUID {
	if user := GetUserFromContext(ctx); user != nil {
		return user.ID
	}
	return uuid.Nil
}
