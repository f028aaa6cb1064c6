package models

import (
	"context"

	"github.com/google/uuid"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey string

const (
	// UserContextKey stores the authenticated user id in the request context.
	UserContextKey contextKey = "userID"
	// RolesContextKey stores the []string of user roles in the request context.
	RolesContextKey contextKey = "userRoles"
)

// GetUserIDFromContext extracts the user id placed by the auth middleware.
// Returns uuid.Nil and false when the key is absent or of the wrong type.
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserContextKey).(uuid.UUID)
	return userID, ok
}

// GetRolesFromContext extracts the role slice placed by the auth middleware.
func GetRolesFromContext(ctx context.Context) ([]string, bool) {
	roles, ok := ctx.Value(RolesContextKey).([]string)
	return roles, ok
}
