package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
	"github.com/pkoukk/tiktoken-go"
	"github.com/prometheus/client_golang/prometheus"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"storyteller-server/shared/models"
	"storyteller-server/story-service/internal/config"
)

// UsageInfo carries token accounting for one generation call.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// AIClient abstracts the text generation backend. Implementations must be
// safe for concurrent use.
type AIClient interface {
	// GenerateText runs one completion over the given prompt and returns the
	// generated text with token usage. Errors wrap models.ErrAIGenerationFailed.
	GenerateText(ctx context.Context, prompt string) (string, UsageInfo, error)
}

// estimateTokens approximates a token count when the provider omits usage.
func estimateTokens(model, text string) int {
	tke, err := tiktoken.EncodingForModel(model)
	if err != nil {
		// Fall back to a generic encoding for non-OpenAI model names.
		tke, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return 0
		}
	}
	return len(tke.Encode(text, nil, nil))
}

// --- OpenAI Client Implementation ---

type openAIClient struct {
	client *openaigo.Client
	model  string
	logger *zap.Logger
}

func (c *openAIClient) GenerateText(ctx context.Context, prompt string) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty prompt", models.ErrAIGenerationFailed)
	}

	startTime := time.Now()
	c.logger.Debug("Sending request to AI", zap.String("model", c.model), zap.Int("promptBytes", len(prompt)))

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openaigo.ChatCompletionRequest{
			Model: c.model,
			Messages: []openaigo.ChatCompletionMessage{
				{Role: openaigo.ChatMessageRoleUser, Content: prompt},
			},
		},
	)

	duration := time.Since(startTime)

	if err != nil {
		c.logger.Error("AI API request failed", zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", models.ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		c.logger.Warn("AI API returned empty response", zap.Duration("duration", duration))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response", models.ErrAIGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	generatedText := resp.Choices[0].Message.Content

	usageInfo.PromptTokens = resp.Usage.PromptTokens
	usageInfo.CompletionTokens = resp.Usage.CompletionTokens
	usageInfo.TotalTokens = resp.Usage.TotalTokens
	if usageInfo.TotalTokens == 0 {
		// Some OpenAI-compatible gateways drop the usage block.
		usageInfo.PromptTokens = estimateTokens(c.model, prompt)
		usageInfo.CompletionTokens = estimateTokens(c.model, generatedText)
		usageInfo.TotalTokens = usageInfo.PromptTokens + usageInfo.CompletionTokens
	}

	aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.PromptTokens))
	aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.CompletionTokens))

	c.logger.Debug("AI response received",
		zap.Duration("duration", duration),
		zap.Int("responseChars", len(generatedText)),
		zap.Int("totalTokens", usageInfo.TotalTokens))

	return generatedText, usageInfo, nil
}

// --- Ollama Client Implementation ---

type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newOllamaClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	httpClient := &http.Client{
		Timeout: cfg.AITimeout,
	}

	// api.NewClient wants the host without an /v1 suffix.
	host := strings.TrimSuffix(cfg.OllamaHost, "/v1")
	host = strings.TrimSuffix(host, "/")

	parsedURL, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Ollama host %q: %w", host, err)
	}

	client := api.NewClient(parsedURL, httpClient)
	logger.Info("Ollama client created",
		zap.String("host", host),
		zap.String("model", cfg.OllamaModel),
		zap.Duration("timeout", cfg.AITimeout))

	return &ollamaClient{
		client:  client,
		model:   cfg.OllamaModel,
		timeout: cfg.AITimeout,
		logger:  logger,
	}, nil
}

func (c *ollamaClient) GenerateText(ctx context.Context, prompt string) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}

	if strings.TrimSpace(prompt) == "" {
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty prompt", models.ErrAIGenerationFailed)
	}

	stream := false
	req := &api.ChatRequest{
		Model: c.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
	}

	requestCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	startTime := time.Now()
	c.logger.Debug("Sending request to Ollama", zap.String("model", c.model), zap.Int("promptBytes", len(prompt)))

	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r
		return nil
	})

	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			c.logger.Error("Ollama request timed out", zap.Duration("timeout", c.timeout), zap.Duration("duration", duration))
		} else {
			c.logger.Error("Ollama request failed", zap.Duration("duration", duration), zap.Error(err))
		}
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", models.ErrAIGenerationFailed, err)
	}

	if resp.Message.Content == "" {
		c.logger.Warn("Ollama returned empty response", zap.Duration("duration", duration))
		aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "error_empty_response"}).Inc()
		return "", usageInfo, fmt.Errorf("%w: empty response", models.ErrAIGenerationFailed)
	}

	aiRequestsTotal.With(prometheus.Labels{"model": c.model, "status": "success"}).Inc()
	aiRequestDuration.With(prometheus.Labels{"model": c.model}).Observe(duration.Seconds())

	usageInfo.PromptTokens = resp.PromptEvalCount
	usageInfo.CompletionTokens = resp.EvalCount
	usageInfo.TotalTokens = resp.PromptEvalCount + resp.EvalCount
	if usageInfo.TotalTokens > 0 {
		aiPromptTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.PromptTokens))
		aiCompletionTokens.With(prometheus.Labels{"model": c.model}).Observe(float64(usageInfo.CompletionTokens))
	}

	return resp.Message.Content, usageInfo, nil
}

// --- Factory Function ---

// NewAIClient builds the configured AI backend.
func NewAIClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	log := logger.Named("AIClient")
	switch strings.ToLower(cfg.AIProvider) {
	case "openai":
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		openaiConfig.BaseURL = cfg.AIBaseURL
		openaiConfig.HTTPClient = &http.Client{
			Timeout: cfg.AITimeout,
		}
		client := openaigo.NewClientWithConfig(openaiConfig)
		log.Info("OpenAI client created",
			zap.String("baseURL", cfg.AIBaseURL),
			zap.String("model", cfg.AIModel),
			zap.Duration("timeout", cfg.AITimeout))
		return &openAIClient{
			client: client,
			model:  cfg.AIModel,
			logger: log,
		}, nil
	case "ollama":
		return newOllamaClient(cfg, log)
	default:
		return nil, fmt.Errorf("unknown AI provider: %q", cfg.AIProvider)
	}
}
