package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"storyteller-server/shared/interfaces"
	"storyteller-server/shared/models"
)

// Compile-time check to ensure pgSubscriptionRepository implements SubscriptionRepository
var _ interfaces.SubscriptionRepository = (*pgSubscriptionRepository)(nil)

type pgSubscriptionRepository struct {
	db     interfaces.DBTX
	logger *zap.Logger
}

// NewPgSubscriptionRepository creates a PostgreSQL-backed SubscriptionRepository.
func NewPgSubscriptionRepository(db interfaces.DBTX, logger *zap.Logger) interfaces.SubscriptionRepository {
	return &pgSubscriptionRepository{
		db:     db,
		logger: logger.Named("PgSubscriptionRepo"),
	}
}

const subscriptionColumns = `user_id, tier, stories_used_this_month, voice_stories_used_this_month, cycle_reset_date, created_at, updated_at`

// LoadOrCreate returns the user's subscription, inserting a free-tier row
// with zero counters when none exists yet.
func (r *pgSubscriptionRepository) LoadOrCreate(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	insert := `INSERT INTO subscriptions (user_id, tier, stories_used_this_month, voice_stories_used_this_month, cycle_reset_date)
	           VALUES ($1, 'free', 0, 0, now())
	           ON CONFLICT (user_id) DO NOTHING`
	if _, err := r.db.Exec(ctx, insert, userID); err != nil {
		r.logger.Error("Failed to ensure subscription row", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to ensure subscription row: %w", err)
	}

	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions WHERE user_id = $1`
	sub := &models.Subscription{}
	err := pgxscan.Get(ctx, r.db, sub, query, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSubscriptionNotFound
		}
		r.logger.Error("Failed to load subscription", zap.Error(err), zap.String("userID", userID.String()))
		return nil, fmt.Errorf("failed to load subscription: %w", err)
	}
	return sub, nil
}

// ResetIfNewCycle zeroes both counters and stamps the current time when the
// calendar month or year has changed since the stored reset date. A rolling
// window is deliberately not used: usage resets on month boundaries.
func (r *pgSubscriptionRepository) ResetIfNewCycle(ctx context.Context, sub *models.Subscription) (*models.Subscription, error) {
	now := time.Now().UTC()
	reset := sub.CycleResetDate.UTC()
	if now.Month() == reset.Month() && now.Year() == reset.Year() {
		return sub, nil
	}

	query := `UPDATE subscriptions
	          SET stories_used_this_month = 0,
	              voice_stories_used_this_month = 0,
	              cycle_reset_date = now(),
	              updated_at = now()
	          WHERE user_id = $1
	          RETURNING ` + subscriptionColumns
	fresh := &models.Subscription{}
	err := pgxscan.Get(ctx, r.db, fresh, query, sub.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrSubscriptionNotFound
		}
		r.logger.Error("Failed to reset billing cycle", zap.Error(err), zap.String("userID", sub.UserID.String()))
		return nil, fmt.Errorf("failed to reset billing cycle: %w", err)
	}
	r.logger.Info("Billing cycle reset", zap.String("userID", sub.UserID.String()), zap.String("tier", string(fresh.Tier)))
	return fresh, nil
}

// CommitIncrement bumps one usage counter by exactly 1, conditioned on the
// counter still holding the value the caller observed when it ran the quota
// check. A concurrent commit between read and write makes the condition fail
// and surfaces as ErrUsageConflict.
func (r *pgSubscriptionRepository) CommitIncrement(ctx context.Context, userID uuid.UUID, field models.UsageField, observed int) error {
	column, err := usageColumn(field)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE subscriptions
	          SET %[1]s = %[1]s + 1, updated_at = now()
	          WHERE user_id = $1 AND %[1]s = $2`, column)
	tag, err := r.db.Exec(ctx, query, userID, observed)
	if err != nil {
		r.logger.Error("Failed to commit usage increment", zap.Error(err), zap.String("userID", userID.String()), zap.String("field", column))
		return fmt.Errorf("failed to commit usage increment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		exists := false
		checkErr := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM subscriptions WHERE user_id = $1)`, userID).Scan(&exists)
		if checkErr != nil {
			return fmt.Errorf("failed to verify subscription after conflict: %w", checkErr)
		}
		if !exists {
			return models.ErrSubscriptionNotFound
		}
		r.logger.Warn("Usage counter moved under us", zap.String("userID", userID.String()), zap.String("field", column), zap.Int("observed", observed))
		return models.ErrUsageConflict
	}
	return nil
}

// usageColumn maps the enumerated usage fields onto their column names.
// The mapping doubles as a whitelist; the field value never reaches SQL
// unchecked.
func usageColumn(field models.UsageField) (string, error) {
	switch field {
	case models.UsageFieldStories:
		return "stories_used_this_month", nil
	case models.UsageFieldVoiceStories:
		return "voice_stories_used_this_month", nil
	default:
		return "", fmt.Errorf("unknown usage field %q: %w", string(field), models.ErrInvalidInput)
	}
}
