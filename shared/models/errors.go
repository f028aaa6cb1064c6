package models

import "errors"

// Application-wide standard errors
var (
	// Common Resource/DB Errors
	ErrNotFound             = errors.New("resource not found") // General not found
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// Authentication Errors
	ErrUnauthorized = errors.New("unauthorized") // Authentication required or failed
	ErrForbidden    = errors.New("forbidden")    // Authenticated, but lacks permission

	// Token Errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// Entitlement Errors
	ErrStoryLimitReached = errors.New("monthly story limit reached")
	ErrVoiceLimitReached = errors.New("monthly voice story limit reached")
	ErrFeatureLocked     = errors.New("feature is not available on current tier")

	// Safety Errors
	ErrContentBlocked = errors.New("content blocked by safety policy")

	// Generation Errors
	ErrAIGenerationFailed = errors.New("ai text generation failed")

	// Ledger Errors
	ErrUsageConflict = errors.New("usage counter changed concurrently")

	// General Request/Server Errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
	ErrInvalidInput   = errors.New("invalid input data")
)
