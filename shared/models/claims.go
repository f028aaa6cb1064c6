package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims represents the JWT payload issued by the external identity provider.
// Only the stable user id and roles are consumed by this service.
type Claims struct {
	UserID               uuid.UUID `json:"user_id"`
	Roles                []string  `json:"roles"`
	jwt.RegisteredClaims           // Issuer, Subject, ExpiresAt, IssuedAt, ID (JTI)
}
