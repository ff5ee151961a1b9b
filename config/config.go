package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jordanlanch/namereport/pkg/domain"
)

// Access policy modes
const (
	AccessPolicyAuto    = ""
	AccessPolicyMetered = "metered"
	AccessPolicyStatic  = "static"
	AccessPolicyOpen    = "open"
)

// LLM providers
const (
	ProviderDeepSeek = "deepseek"
	ProviderOpenAI   = "openai"
	ProviderGemini   = "gemini"
)

// Config holds all application configuration
type Config struct {
	// API Configuration
	APIPort        string
	APIHost        string
	APIEnvironment string

	// Logging
	LogLevel  string
	LogFormat string

	// LLM provider
	LLMProvider    string
	DeepSeekAPIKey string
	OpenAIAPIKey   string
	GeminiAPIKey   string
	LLMBaseURL     string
	LLMModel       string
	LLMTemperature float32
	LLMMaxTokens   int
	LLMTimeout     time.Duration

	// Access control
	AccessPolicy   string
	CardKey        string
	QuotaRedisURL  string
	QuotaKeyPrefix string

	// Secrets backend for the credentials above
	SecretsBackend   string
	SecretsAWSRegion string
	SecretsPrefix    string

	// Rate Limiting
	RateLimitRequestsPerMinute int
	RateLimitBurst             int

	// Sentry
	SentryDSN         string
	SentryEnvironment string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		// API
		APIPort:        getEnv("API_PORT", "8080"),
		APIHost:        getEnv("API_HOST", "0.0.0.0"),
		APIEnvironment: getEnv("API_ENVIRONMENT", "development"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),

		// LLM
		LLMProvider:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderDeepSeek)),
		DeepSeekAPIKey: getEnv("DEEPSEEK_API_KEY", ""),
		OpenAIAPIKey:   getEnv("OPENAI_API_KEY", ""),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		LLMBaseURL:     getEnv("LLM_BASE_URL", ""),
		LLMModel:       getEnv("LLM_MODEL", ""),
		LLMTemperature: getEnvAsFloat32("LLM_TEMPERATURE", 1.1),
		LLMMaxTokens:   getEnvAsInt("LLM_MAX_TOKENS", 0),
		LLMTimeout:     getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),

		// Access control
		AccessPolicy:   strings.ToLower(getEnv("ACCESS_POLICY", AccessPolicyAuto)),
		CardKey:        getEnv("CARD_KEY", ""),
		QuotaRedisURL:  getEnv("QUOTA_REDIS_URL", getEnv("REDIS_URL", "")),
		QuotaKeyPrefix: getEnv("QUOTA_KEY_PREFIX", "cardkey:"),

		// Secrets
		SecretsBackend:   strings.ToLower(getEnv("SECRETS_BACKEND", "env")),
		SecretsAWSRegion: getEnv("AWS_REGION", "us-east-1"),
		SecretsPrefix:    getEnv("SECRETS_PREFIX", ""),

		// Rate Limiting
		RateLimitRequestsPerMinute: getEnvAsInt("RATE_LIMIT_REQUESTS_PER_MINUTE", 30),
		RateLimitBurst:             getEnvAsInt("RATE_LIMIT_BURST", 5),

		// Sentry
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		SentryEnvironment: getEnv("SENTRY_ENVIRONMENT", getEnv("API_ENVIRONMENT", "development")),
	}
}

// LLMAPIKey returns the API key for the configured provider
func (c *Config) LLMAPIKey() string {
	switch c.LLMProvider {
	case ProviderOpenAI:
		return c.OpenAIAPIKey
	case ProviderGemini:
		return c.GeminiAPIKey
	default:
		return c.DeepSeekAPIKey
	}
}

// ResolvedAccessPolicy returns the access policy mode, resolving "auto"
// against what is configured.
func (c *Config) ResolvedAccessPolicy() string {
	if c.AccessPolicy != AccessPolicyAuto {
		return c.AccessPolicy
	}
	switch {
	case c.QuotaRedisURL != "":
		return AccessPolicyMetered
	case c.CardKey != "":
		return AccessPolicyStatic
	default:
		return AccessPolicyOpen
	}
}

// Validate reports missing or inconsistent settings as a configuration error.
func (c *Config) Validate() error {
	var problems []string

	switch c.LLMProvider {
	case ProviderDeepSeek, ProviderOpenAI, ProviderGemini:
	default:
		problems = append(problems, fmt.Sprintf("unknown LLM_PROVIDER %q", c.LLMProvider))
	}
	if c.LLMAPIKey() == "" {
		problems = append(problems, fmt.Sprintf("API key for provider %q is not set", c.LLMProvider))
	}

	switch c.ResolvedAccessPolicy() {
	case AccessPolicyMetered:
		if c.QuotaRedisURL == "" {
			problems = append(problems, "ACCESS_POLICY=metered requires QUOTA_REDIS_URL")
		}
	case AccessPolicyStatic:
		if c.CardKey == "" {
			problems = append(problems, "ACCESS_POLICY=static requires CARD_KEY")
		}
	case AccessPolicyOpen:
	default:
		problems = append(problems, fmt.Sprintf("unknown ACCESS_POLICY %q", c.AccessPolicy))
	}

	if c.LLMTimeout <= 0 {
		problems = append(problems, "LLM_TIMEOUT must be positive")
	}

	if len(problems) > 0 {
		return domain.NewConfigurationError(strings.Join(problems, "; "))
	}
	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 32)
	if err != nil {
		return defaultValue
	}

	return float32(value)
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}
