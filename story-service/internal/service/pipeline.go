package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"storyteller-server/shared/interfaces"
	"storyteller-server/shared/models"
	"storyteller-server/story-service/internal/messaging"
	"storyteller-server/story-service/internal/policy"
	"storyteller-server/story-service/internal/prompt"
	"storyteller-server/story-service/internal/safety"
)

// SafetyError reports a request or a generated story blocked by the
// content filter. Stage tells which check tripped.
type SafetyError struct {
	Stage      string // "request" or "generated"
	Verdict    models.SafetyVerdict
	Suggestion string // filled for protected phrase violations
}

const (
	SafetyStageRequest   = "request"
	SafetyStageGenerated = "generated"
)

func (e *SafetyError) Error() string {
	return fmt.Sprintf("content blocked at %s stage: %s", e.Stage, e.Verdict.PrimaryPhrase())
}

func (e *SafetyError) Unwrap() error {
	return models.ErrContentBlocked
}

// UsageSnapshot is the usage view returned alongside results and from the
// subscription endpoint. A limit of -1 means unlimited.
type UsageSnapshot struct {
	Tier         models.Tier `json:"tier"`
	StoriesUsed  int         `json:"storiesUsed"`
	StoriesLimit int         `json:"storiesLimit"`
	VoiceUsed    int         `json:"voiceStoriesUsed"`
	VoiceLimit   int         `json:"voiceStoriesLimit"`
	VoiceAllowed bool        `json:"voiceAllowed"`

	CycleResetDate time.Time `json:"cycleResetDate"`
}

// StoryResult is a successfully generated story plus its accounting.
type StoryResult struct {
	Story    string        `json:"story"`
	Attempts int           `json:"attempts"`
	Usage    UsageSnapshot `json:"usage"`
}

// StoryService is the generation pipeline: entitlements, safety, prompt
// assembly, bounded-retry generation and usage accounting.
type StoryService interface {
	// GenerateStory runs the full pipeline for one request. On success the
	// returned result always carries the story; usage commit failures are
	// absorbed and reconciled asynchronously rather than surfaced.
	GenerateStory(ctx context.Context, userID uuid.UUID, req *models.StoryRequest) (*StoryResult, error)

	// AuthorizeNarration checks and consumes one voice narration slot.
	AuthorizeNarration(ctx context.Context, userID uuid.UUID) (*UsageSnapshot, error)

	// GetUsage returns the current cycle's usage for the user.
	GetUsage(ctx context.Context, userID uuid.UUID) (*UsageSnapshot, error)
}

type storyServiceImpl struct {
	subs      interfaces.SubscriptionRepository
	safety    *safety.Provider
	ai        AIClient
	publisher messaging.ReconciliationPublisher
	logger    *zap.Logger
}

// NewStoryService wires the pipeline dependencies.
func NewStoryService(
	subs interfaces.SubscriptionRepository,
	safetyProvider *safety.Provider,
	ai AIClient,
	publisher messaging.ReconciliationPublisher,
	logger *zap.Logger,
) StoryService {
	return &storyServiceImpl{
		subs:      subs,
		safety:    safetyProvider,
		ai:        ai,
		publisher: publisher,
		logger:    logger.Named("StoryService"),
	}
}

func snapshot(sub *models.Subscription) UsageSnapshot {
	ent := policy.ForTier(sub.Tier)
	voiceLimit := 0
	if ent.VoiceAllowed {
		voiceLimit = policy.VoiceStoriesPerMonth
	}
	return UsageSnapshot{
		Tier:         sub.Tier,
		StoriesUsed:  sub.StoriesUsedThisMonth,
		StoriesLimit: ent.StoriesPerMonth,
		VoiceUsed:    sub.VoiceStoriesUsedThisMonth,
		VoiceLimit:   voiceLimit,
		VoiceAllowed: ent.VoiceAllowed,

		CycleResetDate: sub.CycleResetDate,
	}
}

// currentSubscription loads the ledger row and rolls the billing cycle
// forward when the calendar month changed.
func (s *storyServiceImpl) currentSubscription(ctx context.Context, userID uuid.UUID) (*models.Subscription, error) {
	sub, err := s.subs.LoadOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.subs.ResetIfNewCycle(ctx, sub)
}

func (s *storyServiceImpl) GenerateStory(ctx context.Context, userID uuid.UUID, req *models.StoryRequest) (*StoryResult, error) {
	req.Normalize()

	sub, err := s.currentSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}

	if denial := policy.Evaluate(sub, req); denial != nil {
		policyDenialsTotal.With(prometheus.Labels{"tier": string(sub.Tier), "reason": string(denial.Reason)}).Inc()
		s.logger.Info("Request denied by entitlements",
			zap.String("userID", userID.String()),
			zap.String("tier", string(sub.Tier)),
			zap.String("reason", string(denial.Reason)))
		return nil, denial
	}

	filter := s.safety.CurrentFilter(ctx)

	if verdict := filter.CheckRequest(req); verdict.Violated {
		storiesBlockedTotal.With(prometheus.Labels{"stage": SafetyStageRequest, "kind": string(verdict.Kind)}).Inc()
		s.logger.Info("Request blocked by safety filter",
			zap.String("userID", userID.String()),
			zap.String("kind", string(verdict.Kind)),
			zap.String("phrase", verdict.PrimaryPhrase()))
		blockErr := &SafetyError{Stage: SafetyStageRequest, Verdict: verdict}
		if verdict.Kind == models.ViolationIP {
			blockErr.Suggestion = safety.SuggestAlternative(verdict.PrimaryPhrase())
		}
		return nil, blockErr
	}

	doc := prompt.Compose(req)

	story, _, err := s.ai.GenerateText(ctx, doc.Text)
	if err != nil {
		return nil, err
	}
	attempts := 1

	if verdict := filter.CheckGenerated(story); verdict.Violated {
		s.logger.Info("Generated story flagged by safety filter, retrying once",
			zap.String("kind", string(verdict.Kind)),
			zap.String("userID", userID.String()),
			zap.String("phrase", verdict.PrimaryPhrase()))

		retryDoc := doc.WithNegativeConstraint(verdict.PrimaryPhrase())
		retryStory, _, retryErr := s.ai.GenerateText(ctx, retryDoc.Text)
		if retryErr != nil {
			return nil, retryErr
		}
		attempts = 2

		if second := filter.CheckGenerated(retryStory); second.Violated {
			storiesBlockedTotal.With(prometheus.Labels{"stage": SafetyStageGenerated, "kind": string(second.Kind)}).Inc()
			s.logger.Warn("Retry still flagged by safety filter, giving up",
				zap.String("userID", userID.String()),
				zap.String("kind", string(second.Kind)),
				zap.String("phrase", second.PrimaryPhrase()))
			blockErr := &SafetyError{Stage: SafetyStageGenerated, Verdict: second}
			if second.Kind == models.ViolationIP {
				blockErr.Suggestion = safety.SuggestAlternative(second.PrimaryPhrase())
			}
			return nil, blockErr
		}
		story = retryStory
	}

	// The story is safe and will be returned. Usage commits after this
	// point; a failed commit must not take the story away from the user.
	s.commitOrReconcile(ctx, userID, models.UsageFieldStories, sub.StoriesUsedThisMonth)

	storiesGeneratedTotal.With(prometheus.Labels{"tier": string(sub.Tier), "attempts": strconv.Itoa(attempts)}).Inc()

	result := &StoryResult{
		Story:    story,
		Attempts: attempts,
		Usage:    snapshot(sub),
	}
	result.Usage.StoriesUsed++
	return result, nil
}

// commitOrReconcile tries the conditional usage increment; on any failure it
// hands the increment to the reconciliation queue instead of failing the
// request.
func (s *storyServiceImpl) commitOrReconcile(ctx context.Context, userID uuid.UUID, field models.UsageField, observed int) {
	err := s.subs.CommitIncrement(ctx, userID, field, observed)
	if err == nil {
		return
	}

	reason := "ledger_write_failed"
	if errors.Is(err, models.ErrUsageConflict) {
		reason = "usage_conflict"
	}
	s.logger.Warn("Usage commit failed, publishing reconciliation event",
		zap.String("userID", userID.String()),
		zap.String("field", string(field)),
		zap.String("reason", reason),
		zap.Error(err))

	event := messaging.UsageReconciliationEvent{
		EventID:    uuid.NewString(),
		UserID:     userID.String(),
		Field:      field,
		Observed:   observed,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
	if pubErr := s.publisher.PublishUsageReconciliation(ctx, event); pubErr != nil {
		// Nothing left to do inline; the delivered story stays delivered.
		s.logger.Error("Failed to publish reconciliation event",
			zap.String("userID", userID.String()), zap.Error(pubErr))
		return
	}
	usageReconciliationsTotal.Inc()
}

func (s *storyServiceImpl) AuthorizeNarration(ctx context.Context, userID uuid.UUID) (*UsageSnapshot, error) {
	// The commit doubles as the authorization here, so a conflict gets one
	// fresh re-read before giving up.
	for attempt := 0; attempt < 2; attempt++ {
		sub, err := s.currentSubscription(ctx, userID)
		if err != nil {
			return nil, err
		}

		if denial := policy.EvaluateVoice(sub); denial != nil {
			policyDenialsTotal.With(prometheus.Labels{"tier": string(sub.Tier), "reason": string(denial.Reason)}).Inc()
			return nil, denial
		}

		err = s.subs.CommitIncrement(ctx, userID, models.UsageFieldVoiceStories, sub.VoiceStoriesUsedThisMonth)
		if err == nil {
			snap := snapshot(sub)
			snap.VoiceUsed++
			return &snap, nil
		}
		if !errors.Is(err, models.ErrUsageConflict) {
			return nil, err
		}
	}
	return nil, models.ErrUsageConflict
}

func (s *storyServiceImpl) GetUsage(ctx context.Context, userID uuid.UUID) (*UsageSnapshot, error) {
	sub, err := s.currentSubscription(ctx, userID)
	if err != nil {
		return nil, err
	}
	snap := snapshot(sub)
	return &snap, nil
}
