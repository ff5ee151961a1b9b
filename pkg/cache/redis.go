package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Results of the conditional counter scripts that are not counter values
const (
	CounterMissing  int64 = -2
	CounterNotInt   int64 = -3
	CounterDepleted int64 = -1
)

// ErrNotInteger is returned when a counter key holds a non-integer value
var ErrNotInteger = errors.New("cache: value is not an integer")

// decrementIfPositive decrements KEYS[1] only when it exists and is > 0.
// The whole check-and-decrement runs atomically inside Redis.
var decrementIfPositive = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  return -2
end
local n = tonumber(v)
if not n or n ~= math.floor(n) then
  return -3
end
if n <= 0 then
  return -1
end
return redis.call('DECR', KEYS[1])
`)

// incrementIfExists adds ARGV[1] to KEYS[1] only when the key already exists.
var incrementIfExists = redis.NewScript(`
local v = redis.call('GET', KEYS[1])
if not v then
  return -2
end
local n = tonumber(v)
if not n or n ~= math.floor(n) then
  return -3
end
return redis.call('INCRBY', KEYS[1], ARGV[1])
`)

// Client holds the Redis client
type Client struct {
	Redis *redis.Client
}

// NewClient creates a new Redis client
func NewClient(redisURL string) (*Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed parsing redis URL: %w", err)
	}

	client := redis.NewClient(opts)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed connecting to redis: %w", err)
	}

	return &Client{
		Redis: client,
	}, nil
}

// Close closes the Redis connection
func (c *Client) Close() error {
	return c.Redis.Close()
}

// Ping checks the connection
func (c *Client) Ping(ctx context.Context) error {
	return c.Redis.Ping(ctx).Err()
}

// GetInt reads an integer counter. found is false when the key does not exist.
func (c *Client) GetInt(ctx context.Context, key string) (value int64, found bool, err error) {
	value, err = c.Redis.Get(ctx, key).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, true, fmt.Errorf("%w: %s", ErrNotInteger, key)
		}
		return 0, false, err
	}
	return value, true, nil
}

// DecrementIfPositive atomically decrements a counter that exists and is
// greater than zero. It returns the new value, or one of CounterMissing /
// CounterDepleted when nothing was changed.
func (c *Client) DecrementIfPositive(ctx context.Context, key string) (int64, error) {
	n, err := decrementIfPositive.Run(ctx, c.Redis, []string{key}).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to decrement %s: %w", key, err)
	}
	if n == CounterNotInt {
		return 0, fmt.Errorf("%w: %s", ErrNotInteger, key)
	}
	return n, nil
}

// IncrementIfExists atomically adds delta to an existing counter. It returns
// CounterMissing when the key does not exist.
func (c *Client) IncrementIfExists(ctx context.Context, key string, delta int64) (int64, error) {
	n, err := incrementIfExists.Run(ctx, c.Redis, []string{key}, delta).Int64()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}
	if n == CounterNotInt {
		return 0, fmt.Errorf("%w: %s", ErrNotInteger, key)
	}
	return n, nil
}

// SetNX sets a key only when it does not exist yet
func (c *Client) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	return c.Redis.SetNX(ctx, key, value, expiration).Result()
}

// Delete deletes keys and returns how many existed
func (c *Client) Delete(ctx context.Context, keys ...string) (int64, error) {
	return c.Redis.Del(ctx, keys...).Result()
}
