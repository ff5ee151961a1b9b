package quota

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore_IssueAndGet(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "CARD1", 3))
	assert.True(t, mr.Exists(testPrefix+"CARD1"))

	remaining, found, err := store.Get(ctx, "CARD1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(3), remaining)

	assert.ErrorIs(t, store.Issue(ctx, "CARD1", 10), ErrRecordExists)
	assert.ErrorIs(t, store.Issue(ctx, "CARD2", 0), ErrInvalidUses)
}

func TestRedisStore_Decrement(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.Decrement(ctx, "MISSING")
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, store.Issue(ctx, "CARD", 1))
	left, err := store.Decrement(ctx, "CARD")
	require.NoError(t, err)
	assert.Equal(t, int64(0), left)

	_, err = store.Decrement(ctx, "CARD")
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestRedisStore_TopUpReactivates(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	_, err := store.TopUp(ctx, "MISSING", 5)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	require.NoError(t, store.Issue(ctx, "CARD", 1))
	_, err = store.Decrement(ctx, "CARD")
	require.NoError(t, err)

	balance, err := store.TopUp(ctx, "CARD", 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), balance)

	_, err = store.TopUp(ctx, "CARD", -1)
	assert.ErrorIs(t, err, ErrInvalidUses)
}

func TestRedisStore_Revoke(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	require.NoError(t, store.Issue(ctx, "CARD", 2))
	require.NoError(t, store.Revoke(ctx, "CARD"))
	assert.False(t, mr.Exists(testPrefix+"CARD"))

	assert.ErrorIs(t, store.Revoke(ctx, "CARD"), ErrRecordNotFound)
}
