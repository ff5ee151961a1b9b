package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/jordanlanch/namereport/config"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/sashabaranov/go-openai"
)

// LLMClient is the interface for LLM clients (DeepSeek/OpenAI, Gemini)
type LLMClient interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	Provider() string
}

// Ensure implementations satisfy the interface
var _ LLMClient = (*OpenAIClient)(nil)
var _ LLMClient = (*GeminiClient)(nil)

// ChatMessage represents a chat message
type ChatMessage struct {
	Role    string `json:"role"` // system, user, assistant
	Content string `json:"content"`
}

// ChatRequest represents a chat completion request
type ChatRequest struct {
	Messages    []ChatMessage `json:"messages"`
	Temperature float32       `json:"temperature,omitempty"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	JSONMode    bool          `json:"json_mode,omitempty"`
}

// ChatResponse represents a chat completion response. Envelope is the
// OpenAI-compatible completion document as the provider returned it.
type ChatResponse struct {
	Content      string                        `json:"content"`
	Envelope     openai.ChatCompletionResponse `json:"envelope"`
	TokensUsed   int                           `json:"tokens_used"`
	FinishReason string                        `json:"finish_reason"`
}

// Config for LLM clients
type Config struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

// Provider defaults
const (
	DeepSeekBaseURL = "https://api.deepseek.com"
	DeepSeekModel   = "deepseek-chat"
	OpenAIModel     = "gpt-4o-mini"
	GeminiModel     = "gemini-2.5-flash"
)

// ConfigFromApp extracts the LLM settings from the application config
func ConfigFromApp(cfg *config.Config) Config {
	return Config{
		Provider:    cfg.LLMProvider,
		APIKey:      cfg.LLMAPIKey(),
		BaseURL:     cfg.LLMBaseURL,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Timeout:     cfg.LLMTimeout,
	}
}

// New creates the client for the configured provider
func New(ctx context.Context, cfg Config, log logger.Logger) (LLMClient, error) {
	if cfg.APIKey == "" {
		return nil, domain.NewConfigurationError(fmt.Sprintf("API key for provider %q is not set", cfg.Provider))
	}

	switch cfg.Provider {
	case config.ProviderDeepSeek, "":
		if cfg.BaseURL == "" {
			cfg.BaseURL = DeepSeekBaseURL
		}
		if cfg.Model == "" {
			cfg.Model = DeepSeekModel
		}
		cfg.Provider = config.ProviderDeepSeek
		return NewOpenAIClient(cfg, log), nil
	case config.ProviderOpenAI:
		if cfg.Model == "" {
			cfg.Model = OpenAIModel
		}
		return NewOpenAIClient(cfg, log), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg, log)
	default:
		return nil, domain.NewConfigurationError(fmt.Sprintf("unknown LLM provider %q", cfg.Provider))
	}
}
