package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Tier is a closed set of entitlement levels. Adding a tier requires touching
// the policy table, which makes the change compile-time visible.
type Tier string

const (
	TierFree    Tier = "free"
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
)

// ParseTier validates a raw tier string coming from storage.
// Unknown values are an error rather than a silent fallback: a row with a
// corrupted tier must not be treated as premium by accident.
func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierFree, TierBasic, TierPremium:
		return Tier(raw), nil
	default:
		return "", fmt.Errorf("%w: unknown tier %q", ErrInvalidInput, raw)
	}
}

// Subscription is the externalized per-user entitlement record.
// Counters are zero right after a cycle reset and only grow within a cycle.
// The row is mutated by the usage ledger and by the billing webhook (which
// lives outside this service and may change the tier at any time).
type Subscription struct {
	UserID                    uuid.UUID `json:"userId" db:"user_id"`
	Tier                      Tier      `json:"tier" db:"tier"`
	StoriesUsedThisMonth      int       `json:"storiesUsedThisMonth" db:"stories_used_this_month"`
	VoiceStoriesUsedThisMonth int       `json:"voiceStoriesUsedThisMonth" db:"voice_stories_used_this_month"`
	CycleResetDate            time.Time `json:"cycleResetDate" db:"cycle_reset_date"`
	CreatedAt                 time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt                 time.Time `json:"updatedAt" db:"updated_at"`
}

// UsageField selects which monthly counter an increment applies to.
type UsageField string

const (
	UsageFieldStories      UsageField = "stories_used_this_month"
	UsageFieldVoiceStories UsageField = "voice_stories_used_this_month"
)
