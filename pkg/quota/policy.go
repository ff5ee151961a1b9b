package quota

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/jordanlanch/namereport/config"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
)

// Grant is the outcome of a successful authorization.
// Remaining is the count left after this request's use was consumed.
type Grant struct {
	Remaining int64
	Unlimited bool
}

// AccessPolicy authorizes a single generation attempt for a card key.
// One policy is selected at start-up and used for every request.
type AccessPolicy interface {
	Authorize(ctx context.Context, token string) (Grant, error)
	Name() string
}

// MeteredTokenPolicy authorizes against per-card counters in a Store and
// spends one use per successful call. Uses are not refunded when the
// downstream generation fails.
type MeteredTokenPolicy struct {
	store Store
}

// NewMeteredTokenPolicy creates a metered policy over store
func NewMeteredTokenPolicy(store Store) *MeteredTokenPolicy {
	return &MeteredTokenPolicy{store: store}
}

// Name implements AccessPolicy
func (p *MeteredTokenPolicy) Name() string { return config.AccessPolicyMetered }

// Store returns the backing store
func (p *MeteredTokenPolicy) Store() Store { return p.store }

// Authorize implements AccessPolicy
func (p *MeteredTokenPolicy) Authorize(ctx context.Context, token string) (Grant, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Grant{}, domain.NewCredentialMissingError()
	}

	remaining, found, err := p.store.Get(ctx, token)
	if err != nil {
		return Grant{}, domain.NewInternalError(fmt.Errorf("quota lookup: %w", err))
	}
	if !found {
		return Grant{}, domain.NewCredentialInvalidError()
	}
	if remaining <= 0 {
		return Grant{}, domain.NewQuotaExhaustedError()
	}

	// The counter may have moved since Get; the store decides atomically.
	left, err := p.store.Decrement(ctx, token)
	switch {
	case errors.Is(err, ErrExhausted):
		return Grant{}, domain.NewQuotaExhaustedError()
	case errors.Is(err, ErrRecordNotFound):
		return Grant{}, domain.NewCredentialInvalidError()
	case err != nil:
		return Grant{}, domain.NewInternalError(fmt.Errorf("quota decrement: %w", err))
	}

	return Grant{Remaining: left}, nil
}

// StaticSecretPolicy accepts one shared secret with unlimited uses
type StaticSecretPolicy struct {
	secret []byte
}

// NewStaticSecretPolicy creates a policy that accepts only secret
func NewStaticSecretPolicy(secret string) *StaticSecretPolicy {
	return &StaticSecretPolicy{secret: []byte(secret)}
}

// Name implements AccessPolicy
func (p *StaticSecretPolicy) Name() string { return config.AccessPolicyStatic }

// Authorize implements AccessPolicy
func (p *StaticSecretPolicy) Authorize(_ context.Context, token string) (Grant, error) {
	if strings.TrimSpace(token) == "" {
		return Grant{}, domain.NewCredentialMissingError()
	}
	if subtle.ConstantTimeCompare([]byte(token), p.secret) != 1 {
		return Grant{}, domain.NewCredentialInvalidError()
	}
	return Grant{Unlimited: true}, nil
}

// OpenPolicy lets every request through
type OpenPolicy struct{}

// Name implements AccessPolicy
func (OpenPolicy) Name() string { return config.AccessPolicyOpen }

// Authorize implements AccessPolicy
func (OpenPolicy) Authorize(context.Context, string) (Grant, error) {
	return Grant{Unlimited: true}, nil
}

// NewPolicy selects the access policy from configuration. store may be nil
// unless the resolved mode is metered.
func NewPolicy(cfg *config.Config, store Store, log logger.Logger) (AccessPolicy, error) {
	mode := cfg.ResolvedAccessPolicy()
	switch mode {
	case config.AccessPolicyMetered:
		if store == nil {
			return nil, domain.NewConfigurationError("metered access policy requires a quota store")
		}
		log.Info("access policy selected", "policy", mode, "key_prefix", cfg.QuotaKeyPrefix)
		return NewMeteredTokenPolicy(store), nil
	case config.AccessPolicyStatic:
		if cfg.CardKey == "" {
			return nil, domain.NewConfigurationError("static access policy requires CARD_KEY")
		}
		log.Info("access policy selected", "policy", mode)
		return NewStaticSecretPolicy(cfg.CardKey), nil
	case config.AccessPolicyOpen:
		log.Warn("access policy selected: requests are not authenticated", "policy", mode)
		return OpenPolicy{}, nil
	default:
		return nil, domain.NewConfigurationError(fmt.Sprintf("unknown access policy %q", mode))
	}
}

// Fingerprint returns a short non-reversible identifier for logging a card key
func Fingerprint(token string) string {
	if token == "" {
		return ""
	}
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])[:12]
}
