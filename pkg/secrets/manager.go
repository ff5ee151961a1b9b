package secrets

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/secretsmanager"
	"github.com/aws/aws-sdk-go/service/secretsmanager/secretsmanageriface"
)

// Backends
const (
	BackendEnv = "env"
	BackendAWS = "aws"
)

// ErrNotFound is returned when a backend holds no value for a key
var ErrNotFound = errors.New("secret not found")

// Manager looks up credentials by name
type Manager interface {
	GetSecret(ctx context.Context, key string) (string, error)
	Close() error
}

// Config holds secrets manager configuration
type Config struct {
	Backend       string        // "env" or "aws"
	AWSRegion     string        // AWS region for Secrets Manager
	Prefix        string        // prepended to every key, e.g. "namereport/"
	CacheDuration time.Duration // how long a fetched secret is reused
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Backend:       BackendEnv,
		AWSRegion:     "us-east-1",
		CacheDuration: 5 * time.Minute,
	}
}

// NewManager creates a secrets manager for cfg.Backend
func NewManager(cfg Config) (Manager, error) {
	switch strings.ToLower(cfg.Backend) {
	case BackendAWS, "aws-secrets-manager":
		sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS session: %w", err)
		}
		return NewAWSSecretsManager(secretsmanager.New(sess), cfg), nil
	case BackendEnv, "environment", "":
		return NewEnvironmentManager(), nil
	default:
		return nil, fmt.Errorf("unsupported secrets backend: %s", cfg.Backend)
	}
}

// EnvironmentManager reads KEY, or the file named by KEY_FILE
type EnvironmentManager struct{}

// NewEnvironmentManager creates an environment-backed manager
func NewEnvironmentManager() *EnvironmentManager {
	return &EnvironmentManager{}
}

// GetSecret returns the value of key, falling back to the contents of the
// file at key_FILE (mounted Docker or Kubernetes secrets).
func (m *EnvironmentManager) GetSecret(_ context.Context, key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	path := os.Getenv(key + "_FILE")
	if path == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read secret file for %s: %w", key, err)
	}
	value := strings.TrimSpace(string(data))
	if value == "" {
		return "", fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	return value, nil
}

// Close is a no-op
func (m *EnvironmentManager) Close() error {
	return nil
}

// AWSSecretsManager loads secrets from AWS Secrets Manager
type AWSSecretsManager struct {
	client secretsmanageriface.SecretsManagerAPI
	prefix string
	ttl    time.Duration

	mu    sync.RWMutex
	cache map[string]cachedSecret
}

type cachedSecret struct {
	value     string
	expiresAt time.Time
}

// NewAWSSecretsManager wraps a Secrets Manager client
func NewAWSSecretsManager(client secretsmanageriface.SecretsManagerAPI, cfg Config) *AWSSecretsManager {
	return &AWSSecretsManager{
		client: client,
		prefix: cfg.Prefix,
		ttl:    cfg.CacheDuration,
		cache:  make(map[string]cachedSecret),
	}
}

// GetSecret retrieves prefix+key, serving cached values until they expire
func (m *AWSSecretsManager) GetSecret(ctx context.Context, key string) (string, error) {
	id := m.prefix + key
	if value, ok := m.cached(id); ok {
		return value, nil
	}

	result, err := m.client.GetSecretValueWithContext(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == secretsmanager.ErrCodeResourceNotFoundException {
			return "", fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return "", fmt.Errorf("failed to get secret %s: %w", id, err)
	}
	if result.SecretString == nil || *result.SecretString == "" {
		return "", fmt.Errorf("%w: %s has no string value", ErrNotFound, id)
	}

	m.store(id, *result.SecretString)
	return *result.SecretString, nil
}

// Close is a no-op; AWS sessions hold no resources
func (m *AWSSecretsManager) Close() error {
	return nil
}

func (m *AWSSecretsManager) cached(id string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	c, ok := m.cache[id]
	if !ok || time.Now().After(c.expiresAt) {
		return "", false
	}
	return c.value, true
}

func (m *AWSSecretsManager) store(id, value string) {
	if m.ttl <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cache[id] = cachedSecret{value: value, expiresAt: time.Now().Add(m.ttl)}
}
