package policy

import (
	"storyteller-server/shared/models"
)

// StoriesUnlimited marks a tier without a monthly story cap.
const StoriesUnlimited = -1

// VoiceStoriesPerMonth is the monthly narration cap for tiers that allow it.
const VoiceStoriesPerMonth = 20

// Entitlements describes what a subscription tier may do.
type Entitlements struct {
	StoriesPerMonth int
	AllowedLengths  []models.StoryLength
	WorldsAllowed   bool
	VoiceAllowed    bool
}

// AllowsLength reports whether the tier may request the given story length.
func (e Entitlements) AllowsLength(l models.StoryLength) bool {
	for _, allowed := range e.AllowedLengths {
		if allowed == l {
			return true
		}
	}
	return false
}

var tierTable = map[models.Tier]Entitlements{
	models.TierFree: {
		StoriesPerMonth: 3,
		AllowedLengths:  []models.StoryLength{models.StoryLengthShort},
		WorldsAllowed:   false,
		VoiceAllowed:    false,
	},
	models.TierBasic: {
		StoriesPerMonth: StoriesUnlimited,
		AllowedLengths:  []models.StoryLength{models.StoryLengthShort},
		WorldsAllowed:   true,
		VoiceAllowed:    false,
	},
	models.TierPremium: {
		StoriesPerMonth: StoriesUnlimited,
		AllowedLengths:  []models.StoryLength{models.StoryLengthShort, models.StoryLengthMedium, models.StoryLengthLong},
		WorldsAllowed:   true,
		VoiceAllowed:    true,
	},
}

// ForTier returns the entitlements for a tier. Unknown tiers fall back to free.
func ForTier(t models.Tier) Entitlements {
	if e, ok := tierTable[t]; ok {
		return e
	}
	return tierTable[models.TierFree]
}

// DenialReason identifies why a request was refused.
type DenialReason string

const (
	DenialLimitReached   DenialReason = "limitReached"
	DenialLengthLocked   DenialReason = "featureLocked:length"
	DenialWorldsLocked   DenialReason = "featureLocked:worlds"
	DenialVoiceLocked    DenialReason = "featureLocked:voice"
	DenialVoiceExhausted DenialReason = "voiceLimitReached"
)

// Denial carries the refusal reason plus the context handlers need to
// build a helpful response.
type Denial struct {
	Reason         DenialReason
	Tier           models.Tier
	Used           int
	Limit          int
	AllowedLengths []models.StoryLength
}

func (d *Denial) Error() string {
	return string(d.Reason)
}

// Unwrap maps the denial onto the shared sentinel errors so callers can
// dispatch with errors.Is without knowing the reason taxonomy.
func (d *Denial) Unwrap() error {
	switch d.Reason {
	case DenialLimitReached:
		return models.ErrStoryLimitReached
	case DenialVoiceExhausted:
		return models.ErrVoiceLimitReached
	default:
		return models.ErrFeatureLocked
	}
}

// Evaluate checks a story request against the subscription's entitlements.
// Checks run in a fixed order: monthly count, then length, then world
// access. The first failing check wins.
func Evaluate(sub *models.Subscription, req *models.StoryRequest) *Denial {
	ent := ForTier(sub.Tier)

	if ent.StoriesPerMonth != StoriesUnlimited && sub.StoriesUsedThisMonth >= ent.StoriesPerMonth {
		return &Denial{
			Reason: DenialLimitReached,
			Tier:   sub.Tier,
			Used:   sub.StoriesUsedThisMonth,
			Limit:  ent.StoriesPerMonth,
		}
	}

	if !ent.AllowsLength(req.Length) {
		return &Denial{
			Reason:         DenialLengthLocked,
			Tier:           sub.Tier,
			AllowedLengths: ent.AllowedLengths,
		}
	}

	if req.HasWorld() && !ent.WorldsAllowed {
		return &Denial{
			Reason: DenialWorldsLocked,
			Tier:   sub.Tier,
		}
	}

	return nil
}

// EvaluateVoice checks a narration request against the subscription's
// entitlements and the monthly voice counter.
func EvaluateVoice(sub *models.Subscription) *Denial {
	ent := ForTier(sub.Tier)

	if !ent.VoiceAllowed {
		return &Denial{
			Reason: DenialVoiceLocked,
			Tier:   sub.Tier,
		}
	}

	if sub.VoiceStoriesUsedThisMonth >= VoiceStoriesPerMonth {
		return &Denial{
			Reason: DenialVoiceExhausted,
			Tier:   sub.Tier,
			Used:   sub.VoiceStoriesUsedThisMonth,
			Limit:  VoiceStoriesPerMonth,
		}
	}

	return nil
}
