package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	aiRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_service_ai_requests_total",
			Help: "Total number of requests to the AI API.",
		},
		[]string{"model", "status"},
	)
	aiRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_service_ai_request_duration_seconds",
			Help:    "Histogram of AI API request durations.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"model"},
	)
	aiPromptTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_service_ai_prompt_tokens",
			Help:    "Histogram of prompt token counts.",
			Buckets: prometheus.LinearBuckets(250, 250, 20),
		},
		[]string{"model"},
	)
	aiCompletionTokens = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "story_service_ai_completion_tokens",
			Help:    "Histogram of completion token counts.",
			Buckets: prometheus.LinearBuckets(100, 100, 20),
		},
		[]string{"model"},
	)

	storiesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_service_stories_generated_total",
			Help: "Stories successfully generated and returned, by tier and attempt count.",
		},
		[]string{"tier", "attempts"},
	)
	storiesBlockedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_service_stories_blocked_total",
			Help: "Requests refused by the safety filter, by stage and violation kind.",
		},
		[]string{"stage", "kind"},
	)
	policyDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_service_policy_denials_total",
			Help: "Requests refused by the entitlement check, by tier and reason.",
		},
		[]string{"tier", "reason"},
	)
	usageReconciliationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "story_service_usage_reconciliations_total",
			Help: "Usage commits that were deferred to the reconciliation queue.",
		},
	)
)
