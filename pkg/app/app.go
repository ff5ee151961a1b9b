package app

import (
	"context"
	"fmt"

	"github.com/jordanlanch/namereport/config"
	"github.com/jordanlanch/namereport/pkg/ai/llm"
	"github.com/jordanlanch/namereport/pkg/cache"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/jordanlanch/namereport/pkg/metrics"
	"github.com/jordanlanch/namereport/pkg/naming"
	"github.com/jordanlanch/namereport/pkg/quota"
	"github.com/jordanlanch/namereport/pkg/secrets"
	"github.com/prometheus/client_golang/prometheus"
)

// App holds the dependencies shared by the HTTP and Lambda entry points
type App struct {
	Config  *config.Config
	Logger  logger.Logger
	Metrics *metrics.Metrics

	// Cache and Store are nil unless the metered policy is active
	Cache *cache.Client
	Store *quota.RedisStore

	Policy quota.AccessPolicy

	// LLM is nil when the provider is not configured
	LLM llm.LLMClient

	Naming *naming.Service
}

// New wires the application from cfg. A missing provider key is logged and
// leaves LLM nil so the process still serves health checks; generation
// requests then fail with a configuration error. A quota store that cannot
// be reached is fatal.
func New(ctx context.Context, cfg *config.Config, log logger.Logger, reg prometheus.Registerer) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		log.Error("configuration incomplete", "error", err)
	}

	a := &App{
		Config:  cfg,
		Logger:  log,
		Metrics: metrics.New(reg),
	}

	var store quota.Store
	if cfg.ResolvedAccessPolicy() == config.AccessPolicyMetered && cfg.QuotaRedisURL != "" {
		c, err := cache.NewClient(cfg.QuotaRedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to quota store: %w", err)
		}
		a.Cache = c
		a.Store = quota.NewRedisStore(c, cfg.QuotaKeyPrefix)
		store = a.Store
		log.Info("quota store connected", "key_prefix", cfg.QuotaKeyPrefix)
	}

	policy, err := quota.NewPolicy(cfg, store, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Policy = policy

	client, err := llm.New(ctx, llm.ConfigFromApp(cfg), log)
	if err != nil {
		log.Error("LLM provider not configured", "provider", cfg.LLMProvider, "error", err)
	} else {
		a.LLM = client
		log.Info("LLM provider configured", "provider", client.Provider())
	}

	a.Naming = naming.NewService(a.Policy, a.LLM, a.Metrics, log, naming.Options{
		Temperature: cfg.LLMTemperature,
		MaxTokens:   cfg.LLMMaxTokens,
		Timeout:     cfg.LLMTimeout,
	})

	return a, nil
}

// LoadSecrets fills unset credentials in cfg from the configured secrets
// backend. It runs before New so the backend can supply API keys, the card
// key and the quota store URL.
func LoadSecrets(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	m, err := secrets.NewManager(secrets.ConfigFromApp(cfg))
	if err != nil {
		return err
	}
	defer m.Close()
	return secrets.Resolve(ctx, m, cfg, log)
}

// Provider returns the configured provider name, or "" when unconfigured
func (a *App) Provider() string {
	if a.LLM == nil {
		return ""
	}
	return a.LLM.Provider()
}

// Close releases the quota store connection
func (a *App) Close() {
	if a.Cache != nil {
		if err := a.Cache.Close(); err != nil {
			a.Logger.Warn("failed to close quota store", "error", err)
		}
	}
}
