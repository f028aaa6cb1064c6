package interfaces

import (
	"context"

	"github.com/google/uuid"

	"storyteller-server/shared/models"
)

// SubscriptionRepository is the usage ledger contract. The backing store is
// external (PostgreSQL here); what the pipeline relies on is the
// read/compare/increment discipline, not the storage engine.
type SubscriptionRepository interface {
	// LoadOrCreate returns the user's subscription, lazily creating a
	// free-tier row with zero counters on first request.
	LoadOrCreate(ctx context.Context, userID uuid.UUID) (*models.Subscription, error)

	// ResetIfNewCycle zeroes both counters and stamps the current time when
	// the stored reset date's calendar month or year differs from now.
	// It is NOT a rolling 30-day window. Returns the (possibly refreshed)
	// subscription.
	ResetIfNewCycle(ctx context.Context, sub *models.Subscription) (*models.Subscription, error)

	// CommitIncrement bumps exactly one counter by 1, conditioned on the
	// counter still holding the value the caller observed. Returns
	// models.ErrUsageConflict when a concurrent request committed first, so
	// two requests can never both pass a quota check off the same stale read.
	CommitIncrement(ctx context.Context, userID uuid.UUID, field models.UsageField, observed int) error
}
