package quota

import (
	"context"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/jordanlanch/namereport/config"
	"github.com/jordanlanch/namereport/pkg/cache"
	"github.com/jordanlanch/namereport/pkg/domain"
	"github.com/jordanlanch/namereport/pkg/logger"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testPrefix = "cardkey:"

// setupStore creates a RedisStore backed by miniredis
func setupStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := &cache.Client{Redis: redis.NewClient(&redis.Options{Addr: mr.Addr()})}
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, testPrefix), mr
}

// countingStore records how often the wrapped store is touched
type countingStore struct {
	Store
	gets       atomic.Int64
	decrements atomic.Int64
}

func (s *countingStore) Get(ctx context.Context, token string) (int64, bool, error) {
	s.gets.Add(1)
	return s.Store.Get(ctx, token)
}

func (s *countingStore) Decrement(ctx context.Context, token string) (int64, error) {
	s.decrements.Add(1)
	return s.Store.Decrement(ctx, token)
}

func counterValue(t *testing.T, mr *miniredis.Miniredis, token string) int64 {
	t.Helper()
	raw, err := mr.Get(testPrefix + token)
	require.NoError(t, err)
	n, err := strconv.ParseInt(raw, 10, 64)
	require.NoError(t, err)
	return n
}

func TestMeteredTokenPolicy_EmptyTokenSkipsStore(t *testing.T) {
	store, _ := setupStore(t)
	counting := &countingStore{Store: store}
	policy := NewMeteredTokenPolicy(counting)

	for _, token := range []string{"", "   "} {
		_, err := policy.Authorize(context.Background(), token)
		require.Error(t, err)
		assert.True(t, domain.IsCredentialMissing(err))
	}

	assert.Zero(t, counting.gets.Load())
	assert.Zero(t, counting.decrements.Load())
}

func TestMeteredTokenPolicy_UnknownTokenIsInvalid(t *testing.T) {
	store, mr := setupStore(t)
	counting := &countingStore{Store: store}
	policy := NewMeteredTokenPolicy(counting)

	for _, token := range []string{"NOPE", "ABC124", "x"} {
		_, err := policy.Authorize(context.Background(), token)
		require.Error(t, err)
		assert.True(t, domain.IsCredentialInvalid(err), "token %q", token)
		assert.False(t, domain.IsQuotaExhausted(err))
		assert.False(t, mr.Exists(testPrefix+token), "no record may be created")
	}

	assert.Zero(t, counting.decrements.Load())
}

func TestMeteredTokenPolicy_ExhaustedTokenIsNotDecremented(t *testing.T) {
	store, mr := setupStore(t)
	counting := &countingStore{Store: store}
	policy := NewMeteredTokenPolicy(counting)
	require.NoError(t, mr.Set(testPrefix+"EMPTY", "0"))

	_, err := policy.Authorize(context.Background(), "EMPTY")
	require.Error(t, err)
	assert.True(t, domain.IsQuotaExhausted(err))
	assert.Zero(t, counting.decrements.Load())
	assert.Equal(t, int64(0), counterValue(t, mr, "EMPTY"))
}

func TestMeteredTokenPolicy_SingleUseScenario(t *testing.T) {
	store, mr := setupStore(t)
	policy := NewMeteredTokenPolicy(store)
	require.NoError(t, store.Issue(context.Background(), "ABC123", 1))

	grant, err := policy.Authorize(context.Background(), "ABC123")
	require.NoError(t, err)
	assert.Equal(t, int64(0), grant.Remaining)
	assert.False(t, grant.Unlimited)
	assert.Equal(t, int64(0), counterValue(t, mr, "ABC123"))

	_, err = policy.Authorize(context.Background(), "ABC123")
	require.Error(t, err)
	assert.True(t, domain.IsQuotaExhausted(err))
}

func TestMeteredTokenPolicy_CountsDownToZero(t *testing.T) {
	store, mr := setupStore(t)
	policy := NewMeteredTokenPolicy(store)
	const n = 5
	require.NoError(t, store.Issue(context.Background(), "FIVE", n))

	for i := n - 1; i >= 0; i-- {
		grant, err := policy.Authorize(context.Background(), "FIVE")
		require.NoError(t, err)
		assert.Equal(t, int64(i), grant.Remaining)
		assert.Equal(t, int64(i), counterValue(t, mr, "FIVE"))
	}

	_, err := policy.Authorize(context.Background(), "FIVE")
	assert.True(t, domain.IsQuotaExhausted(err))
	assert.Equal(t, int64(0), counterValue(t, mr, "FIVE"))
}

func TestMeteredTokenPolicy_ConcurrentCallersNeverOverspend(t *testing.T) {
	cases := []struct {
		uses    int64
		callers int
	}{
		{uses: 1, callers: 2},
		{uses: 3, callers: 3},
		{uses: 10, callers: 50},
	}

	for _, tc := range cases {
		t.Run(strconv.Itoa(int(tc.uses))+"_of_"+strconv.Itoa(tc.callers), func(t *testing.T) {
			store, mr := setupStore(t)
			policy := NewMeteredTokenPolicy(store)
			require.NoError(t, store.Issue(context.Background(), "SHARED", tc.uses))

			var (
				wg        sync.WaitGroup
				successes atomic.Int64
				exhausted atomic.Int64
				other     atomic.Int64
				start     = make(chan struct{})
			)
			for i := 0; i < tc.callers; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					<-start
					_, err := policy.Authorize(context.Background(), "SHARED")
					switch {
					case err == nil:
						successes.Add(1)
					case domain.IsQuotaExhausted(err):
						exhausted.Add(1)
					default:
						other.Add(1)
					}
				}()
			}
			close(start)
			wg.Wait()

			assert.Equal(t, tc.uses, successes.Load())
			assert.Equal(t, int64(tc.callers)-tc.uses, exhausted.Load())
			assert.Zero(t, other.Load())
			assert.Equal(t, int64(0), counterValue(t, mr, "SHARED"))
		})
	}
}

func TestMeteredTokenPolicy_StoreFailureIsInternal(t *testing.T) {
	store, mr := setupStore(t)
	policy := NewMeteredTokenPolicy(store)
	mr.Close()

	_, err := policy.Authorize(context.Background(), "ANY")
	require.Error(t, err)
	assert.Equal(t, domain.ErrCodeInternal, domain.GetErrorCode(err))
}

func TestStaticSecretPolicy(t *testing.T) {
	policy := NewStaticSecretPolicy("open-sesame")
	ctx := context.Background()

	_, err := policy.Authorize(ctx, "")
	assert.True(t, domain.IsCredentialMissing(err))

	_, err = policy.Authorize(ctx, "open-sesam")
	assert.True(t, domain.IsCredentialInvalid(err))

	grant, err := policy.Authorize(ctx, "open-sesame")
	require.NoError(t, err)
	assert.True(t, grant.Unlimited)

	// Unlimited: repeated use keeps working
	_, err = policy.Authorize(ctx, "open-sesame")
	assert.NoError(t, err)
}

func TestOpenPolicy(t *testing.T) {
	grant, err := OpenPolicy{}.Authorize(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, grant.Unlimited)
}

func TestNewPolicy(t *testing.T) {
	store, _ := setupStore(t)
	log := logger.NewNop()

	p, err := NewPolicy(&config.Config{QuotaRedisURL: "redis://x", CardKey: "k"}, store, log)
	require.NoError(t, err)
	assert.Equal(t, config.AccessPolicyMetered, p.Name())

	p, err = NewPolicy(&config.Config{CardKey: "k"}, nil, log)
	require.NoError(t, err)
	assert.Equal(t, config.AccessPolicyStatic, p.Name())

	p, err = NewPolicy(&config.Config{}, nil, log)
	require.NoError(t, err)
	assert.Equal(t, config.AccessPolicyOpen, p.Name())

	_, err = NewPolicy(&config.Config{AccessPolicy: config.AccessPolicyMetered}, nil, log)
	assert.True(t, domain.IsConfiguration(err))

	_, err = NewPolicy(&config.Config{AccessPolicy: "vip"}, nil, log)
	assert.True(t, domain.IsConfiguration(err))
}

func TestFingerprint(t *testing.T) {
	assert.Empty(t, Fingerprint(""))
	fp := Fingerprint("ABC123")
	assert.Len(t, fp, 12)
	assert.Equal(t, fp, Fingerprint("ABC123"))
	assert.NotEqual(t, fp, Fingerprint("ABC124"))
}
