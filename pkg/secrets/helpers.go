package secrets

import (
	"context"
	"errors"
	"fmt"

	"github.com/jordanlanch/namereport/config"
	"github.com/jordanlanch/namereport/pkg/logger"
)

// ConfigFromApp builds the manager configuration from application settings
func ConfigFromApp(cfg *config.Config) Config {
	c := DefaultConfig()
	if cfg.SecretsBackend != "" {
		c.Backend = cfg.SecretsBackend
	}
	if cfg.SecretsAWSRegion != "" {
		c.AWSRegion = cfg.SecretsAWSRegion
	}
	c.Prefix = cfg.SecretsPrefix
	return c
}

// credentials lists the settings that may come from a secrets backend
func credentials(cfg *config.Config) map[string]*string {
	return map[string]*string{
		"DEEPSEEK_API_KEY": &cfg.DeepSeekAPIKey,
		"OPENAI_API_KEY":   &cfg.OpenAIAPIKey,
		"GEMINI_API_KEY":   &cfg.GeminiAPIKey,
		"CARD_KEY":         &cfg.CardKey,
		"QUOTA_REDIS_URL":  &cfg.QuotaRedisURL,
		"SENTRY_DSN":       &cfg.SentryDSN,
	}
}

// Resolve fills empty credential fields of cfg from m. Values already set
// in the environment win. Keys the backend does not hold are skipped; any
// other lookup failure is returned.
func Resolve(ctx context.Context, m Manager, cfg *config.Config, log logger.Logger) error {
	if log == nil {
		log = logger.NewNop()
	}

	for key, field := range credentials(cfg) {
		if *field != "" {
			continue
		}
		value, err := m.GetSecret(ctx, key)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return fmt.Errorf("failed to resolve %s: %w", key, err)
		}
		*field = value
		log.Debug("credential loaded from secrets backend", "key", key)
	}
	return nil
}
