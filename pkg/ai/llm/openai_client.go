package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any OpenAI-compatible chat completion API
// (DeepSeek by default).
type OpenAIClient struct {
	client      *openai.Client
	provider    string
	model       string
	temperature float32
	maxTokens   int
	logger      logger.Logger
}

// NewOpenAIClient creates a new OpenAI-compatible client
func NewOpenAIClient(cfg Config, log logger.Logger) *OpenAIClient {
	if cfg.Model == "" {
		cfg.Model = DeepSeekModel
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if log == nil {
		log = logger.NewNop()
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}
	clientCfg.HTTPClient = NewHTTPClient(cfg.Timeout)

	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientCfg),
		provider:    cfg.Provider,
		model:       cfg.Model,
		temperature: cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      log.With("provider", cfg.Provider, "model", cfg.Model),
	}
}

// Provider implements LLMClient
func (c *OpenAIClient) Provider() string { return c.provider }

// Chat sends a chat completion request
func (c *OpenAIClient) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	messages := make([]openai.ChatCompletionMessage, len(req.Messages))
	for i, msg := range req.Messages {
		messages[i] = openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		}
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = c.temperature
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = c.maxTokens
	}

	chatReq := openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
	if req.JSONMode {
		chatReq.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, chatReq)
	duration := time.Since(start)

	if err != nil {
		c.logger.Error("chat completion failed",
			"error", err,
			"status", upstreamStatus(err),
			"duration_ms", duration.Milliseconds(),
			"request_id", RequestIDFromContext(ctx),
		)
		return nil, domain.NewUpstreamError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return nil, domain.NewMalformedPayloadError("model response has no content", nil)
	}

	c.logger.Info("chat completion done",
		"tokens", resp.Usage.TotalTokens,
		"duration_ms", duration.Milliseconds(),
		"request_id", RequestIDFromContext(ctx),
	)

	return &ChatResponse{
		Content:      resp.Choices[0].Message.Content,
		Envelope:     resp,
		TokensUsed:   resp.Usage.TotalTokens,
		FinishReason: string(resp.Choices[0].FinishReason),
	}, nil
}

// upstreamStatus extracts the HTTP status from a go-openai error, 0 if none
func upstreamStatus(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
