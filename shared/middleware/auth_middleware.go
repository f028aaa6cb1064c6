package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"storyteller-server/shared/models"
)

// TokenVerifier validates a token string and returns its claims.
// Errors are expected to be models.ErrTokenInvalid, models.ErrTokenExpired,
// models.ErrTokenMalformed and the like.
type TokenVerifier func(ctx context.Context, tokenString string) (*models.Claims, error)

// AuthMiddleware creates an HTTP middleware that verifies the bearer token,
// optionally checks roles, and puts UserID/Roles into the request context.
func AuthMiddleware(verifier TokenVerifier, logger *zap.Logger, requiredRoles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.With(zap.String("path", r.URL.Path))

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Warn("Authorization header missing")
				models.SendJSONError(w, "Unauthorized: Missing token", http.StatusUnauthorized)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				log.Warn("Malformed Authorization header", zap.String("header", authHeader))
				models.SendJSONError(w, "Unauthorized: Malformed token header", http.StatusUnauthorized)
				return
			}
			tokenString := parts[1]

			claims, err := verifier(ctx, tokenString)
			if err != nil {
				status := http.StatusUnauthorized
				msg := "Unauthorized: Invalid token"
				if errors.Is(err, models.ErrTokenExpired) {
					msg = "Unauthorized: Token expired"
				} else if errors.Is(err, models.ErrTokenMalformed) || errors.Is(err, models.ErrTokenInvalid) {
					// Same message for malformed and invalid tokens.
				} else {
					log.Error("Unexpected token verification error", zap.Error(err))
					status = http.StatusInternalServerError
					msg = "Internal server error during token verification"
				}
				tokenSnippet := tokenString
				if len(tokenString) > 10 {
					tokenSnippet = tokenString[:10] + "..."
				}
				log.Warn("Token verification failed", zap.Error(err), zap.String("tokenSnippet", tokenSnippet))
				models.SendJSONError(w, msg, status)
				return
			}

			if len(requiredRoles) > 0 {
				hasRequiredRole := false
				for _, requiredRole := range requiredRoles {
					if models.HasRole(claims.Roles, requiredRole) {
						hasRequiredRole = true
						break
					}
				}

				if !hasRequiredRole {
					log.Warn("User does not have required role",
						zap.Stringer("userID", claims.UserID),
						zap.Strings("userRoles", claims.Roles),
						zap.Strings("requiredRoles", requiredRoles),
					)
					models.SendJSONError(w, "Forbidden: Insufficient permissions", http.StatusForbidden)
					return
				}
			}

			ctx = context.WithValue(ctx, models.UserContextKey, claims.UserID)
			ctx = context.WithValue(ctx, models.RolesContextKey, claims.Roles)

			log.Debug("User authorized", zap.Stringer("userID", claims.UserID), zap.Strings("roles", claims.Roles))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
