package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"storyteller-server/shared/authutils"
	sharedMiddleware "storyteller-server/shared/middleware"
	"storyteller-server/shared/models"
	"storyteller-server/story-service/internal/policy"
	"storyteller-server/story-service/internal/service"
)

// APIError is the standard error response body.
type APIError struct {
	Message string `json:"message"`
}

// generateStoryResponse mirrors the public contract: the story plus a usage
// snapshot, where an unlimited plan reports "unlimited" instead of a number.
type generateStoryResponse struct {
	Story string        `json:"story"`
	Usage usagePayload  `json:"usage"`
}

type usagePayload struct {
	StoriesUsed int `json:"storiesUsed"`
	Limit       any `json:"limit"`
}

func usageFromSnapshot(snap service.UsageSnapshot) usagePayload {
	var limit any = snap.StoriesLimit
	if snap.StoriesLimit == policy.StoriesUnlimited {
		limit = "unlimited"
	}
	return usagePayload{StoriesUsed: snap.StoriesUsed, Limit: limit}
}

// StoryHandler serves the story generation HTTP API.
type StoryHandler struct {
	service           service.StoryService
	logger            *zap.Logger
	userTokenVerifier *authutils.JWTVerifier
}

// NewStoryHandler creates a StoryHandler.
func NewStoryHandler(s service.StoryService, logger *zap.Logger, jwtSecret string) *StoryHandler {
	userVerifier, err := authutils.NewJWTVerifier(jwtSecret, logger)
	if err != nil {
		logger.Fatal("Failed to create User JWT Verifier", zap.Error(err))
	}

	return &StoryHandler{
		service:           s,
		logger:            logger.Named("StoryHandler"),
		userTokenVerifier: userVerifier,
	}
}

// RegisterRoutes registers the story service routes.
func (h *StoryHandler) RegisterRoutes(e *echo.Echo) {
	authMiddleware := echo.WrapMiddleware(sharedMiddleware.AuthMiddleware(h.userTokenVerifier.VerifyToken, h.logger))

	storiesGroup := e.Group("/stories", authMiddleware)
	{
		storiesGroup.POST("/generate", h.generateStory)
		storiesGroup.POST("/narrate", h.authorizeNarration)
	}

	subscriptionsGroup := e.Group("/subscriptions", authMiddleware)
	{
		subscriptionsGroup.GET("/me", h.getUsage)
	}
}

func getUserIDFromContext(c echo.Context) (uuid.UUID, error) {
	userID, ok := models.GetUserIDFromContext(c.Request().Context())
	if !ok || userID == uuid.Nil {
		return uuid.Nil, models.ErrUnauthorized
	}
	return userID, nil
}

func (h *StoryHandler) generateStory(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, APIError{Message: "User not authenticated"})
	}

	// IncludeChild defaults to true, so the zero value must be set before
	// binding: an omitted field keeps the default, an explicit false wins.
	req := models.StoryRequest{IncludeChild: true}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, APIError{Message: "Invalid request body: " + err.Error()})
	}

	result, err := h.service.GenerateStory(c.Request().Context(), userID, &req)
	if err != nil {
		return h.handleGenerationError(c, userID, err)
	}

	return c.JSON(http.StatusOK, generateStoryResponse{
		Story: result.Story,
		Usage: usageFromSnapshot(result.Usage),
	})
}

// handleGenerationError maps pipeline errors onto the structured refusal
// payloads the clients key off.
func (h *StoryHandler) handleGenerationError(c echo.Context, userID uuid.UUID, err error) error {
	var denial *policy.Denial
	if errors.As(err, &denial) {
		return h.respondDenial(c, denial)
	}

	var blocked *service.SafetyError
	if errors.As(err, &blocked) {
		return respondBlocked(c, blocked)
	}

	if errors.Is(err, models.ErrAIGenerationFailed) {
		h.logger.Error("Story generation failed", zap.String("userID", userID.String()), zap.Error(err))
		return c.JSON(http.StatusBadGateway, APIError{Message: "Failed to generate story"})
	}

	h.logger.Error("Unhandled error in generateStory", zap.String("userID", userID.String()), zap.Error(err))
	return c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
}

func (h *StoryHandler) respondDenial(c echo.Context, denial *policy.Denial) error {
	switch denial.Reason {
	case policy.DenialLimitReached:
		message := "Monthly story limit reached."
		if denial.Tier == models.TierFree {
			message = "You've used all 3 free stories! Upgrade to Basic ($4.99/month) for unlimited stories."
		}
		return c.JSON(http.StatusForbidden, echo.Map{
			"error":        message,
			"limitReached": true,
			"tier":         denial.Tier,
			"usage": echo.Map{
				"storiesUsed": denial.Used,
				"limit":       denial.Limit,
			},
		})
	case policy.DenialLengthLocked:
		return c.JSON(http.StatusForbidden, echo.Map{
			"error":          "Longer stories are a Premium feature. Upgrade to unlock longer stories!",
			"featureLocked":  true,
			"tier":           denial.Tier,
			"allowedLengths": denial.AllowedLengths,
		})
	case policy.DenialWorldsLocked:
		return c.JSON(http.StatusForbidden, echo.Map{
			"error":         "Story Worlds are available for Basic and Premium subscribers. Upgrade to explore magical worlds!",
			"featureLocked": true,
			"tier":          denial.Tier,
		})
	case policy.DenialVoiceLocked:
		return c.JSON(http.StatusForbidden, echo.Map{
			"error":         "Voice narration is a Premium feature. Upgrade to listen to your stories!",
			"featureLocked": true,
			"tier":          denial.Tier,
			"requiredTier":  models.TierPremium,
		})
	case policy.DenialVoiceExhausted:
		return c.JSON(http.StatusForbidden, echo.Map{
			"error":        "Monthly voice narration limit reached.",
			"limitReached": true,
			"tier":         denial.Tier,
			"usage": echo.Map{
				"voiceStoriesUsed": denial.Used,
				"limit":            denial.Limit,
			},
		})
	default:
		return c.JSON(http.StatusForbidden, APIError{Message: denial.Error()})
	}
}

func respondBlocked(c echo.Context, blocked *service.SafetyError) error {
	if blocked.Stage == service.SafetyStageGenerated {
		message := "Unable to generate a safe story. Try a different theme."
		if blocked.Verdict.Kind == models.ViolationIP {
			message = "Unable to generate without copyrighted content. Try different theme."
		}
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":          message,
			"blockedContent": string(blocked.Verdict.Kind),
			"suggestion":     blocked.Suggestion,
		})
	}

	if blocked.Verdict.Kind == models.ViolationHarmful {
		matches := blocked.Verdict.MatchedPhrases
		if len(matches) > 2 {
			matches = matches[:2]
		}
		return c.JSON(http.StatusBadRequest, echo.Map{
			"error":          fmt.Sprintf("Let's keep our stories magical! Please avoid: %s", strings.Join(matches, ", ")),
			"blockedContent": "harmful",
		})
	}

	phrase := blocked.Verdict.PrimaryPhrase()
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":          fmt.Sprintf("We create original stories! Instead of %q, how about %q?", phrase, blocked.Suggestion),
		"blockedContent": "ip",
		"suggestion":     blocked.Suggestion,
	})
}

func (h *StoryHandler) authorizeNarration(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, APIError{Message: "User not authenticated"})
	}

	snap, err := h.service.AuthorizeNarration(c.Request().Context(), userID)
	if err != nil {
		var denial *policy.Denial
		if errors.As(err, &denial) {
			return h.respondDenial(c, denial)
		}
		if errors.Is(err, models.ErrUsageConflict) {
			return c.JSON(http.StatusConflict, APIError{Message: "Please retry in a moment"})
		}
		h.logger.Error("Unhandled error in authorizeNarration", zap.String("userID", userID.String()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"authorized": true,
		"usage": echo.Map{
			"voiceStoriesUsed": snap.VoiceUsed,
			"limit":            snap.VoiceLimit,
		},
	})
}

func (h *StoryHandler) getUsage(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, APIError{Message: "User not authenticated"})
	}

	snap, err := h.service.GetUsage(c.Request().Context(), userID)
	if err != nil {
		h.logger.Error("Unhandled error in getUsage", zap.String("userID", userID.String()), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, APIError{Message: "Internal server error"})
	}

	return c.JSON(http.StatusOK, snap)
}
