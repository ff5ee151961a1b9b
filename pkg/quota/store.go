package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/jordanlanch/namereport/pkg/cache"
)

// Store errors
var (
	ErrRecordNotFound = errors.New("quota record not found")
	ErrExhausted      = errors.New("quota exhausted")
	ErrRecordExists   = errors.New("quota record already exists")
	ErrInvalidUses    = errors.New("uses must be a positive integer")
)

// Store is the external key to counter mapping backing metered card keys.
// Decrement must be a single atomic operation on the store side.
type Store interface {
	// Get returns the remaining uses. found is false for tokens that were never issued.
	Get(ctx context.Context, token string) (remaining int64, found bool, err error)
	// Decrement consumes exactly one use and returns the count left after it.
	// It returns ErrRecordNotFound or ErrExhausted without changing anything.
	Decrement(ctx context.Context, token string) (int64, error)
}

// RedisStore keeps one integer key per card key
type RedisStore struct {
	cache  *cache.Client
	prefix string
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore creates a store that namespaces keys with prefix
func NewRedisStore(c *cache.Client, prefix string) *RedisStore {
	return &RedisStore{cache: c, prefix: prefix}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

// Get implements Store
func (s *RedisStore) Get(ctx context.Context, token string) (int64, bool, error) {
	return s.cache.GetInt(ctx, s.key(token))
}

// Decrement implements Store
func (s *RedisStore) Decrement(ctx context.Context, token string) (int64, error) {
	n, err := s.cache.DecrementIfPositive(ctx, s.key(token))
	if err != nil {
		return 0, err
	}
	switch n {
	case cache.CounterMissing:
		return 0, ErrRecordNotFound
	case cache.CounterDepleted:
		return 0, ErrExhausted
	}
	return n, nil
}

// Issue creates a new card key with the given number of uses
func (s *RedisStore) Issue(ctx context.Context, token string, uses int64) error {
	if uses <= 0 {
		return ErrInvalidUses
	}
	ok, err := s.cache.SetNX(ctx, s.key(token), uses, 0)
	if err != nil {
		return fmt.Errorf("failed to issue card key: %w", err)
	}
	if !ok {
		return ErrRecordExists
	}
	return nil
}

// TopUp adds uses to an existing card key and returns the new balance
func (s *RedisStore) TopUp(ctx context.Context, token string, uses int64) (int64, error) {
	if uses <= 0 {
		return 0, ErrInvalidUses
	}
	n, err := s.cache.IncrementIfExists(ctx, s.key(token), uses)
	if err != nil {
		return 0, err
	}
	if n == cache.CounterMissing {
		return 0, ErrRecordNotFound
	}
	return n, nil
}

// Revoke deletes a card key
func (s *RedisStore) Revoke(ctx context.Context, token string) error {
	deleted, err := s.cache.Delete(ctx, s.key(token))
	if err != nil {
		return fmt.Errorf("failed to revoke card key: %w", err)
	}
	if deleted == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Ping checks the backing store
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.cache.Ping(ctx)
}
