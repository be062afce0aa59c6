package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/boxoffice/internal/testutil"
)

// setupTestRedis creates a Redis client for testing.
// Tests will be skipped if Redis is not available.
func setupTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	return testutil.SetupTestRedis(t)
}

func TestKVStore_SetAndGet(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewKVStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "boxoffice:abc:token", "tok-1"))

	v, ok, err := store.Get(ctx, "boxoffice:abc:token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok-1", v)

	ttl := client.TTL(ctx, "boxoffice:abc:token").Val()
	assert.Equal(t, time.Duration(-1), ttl, "keys are stored without expiry")
}

func TestKVStore_GetMissing(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewKVStore(client)

	v, ok, err := store.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, v)
}

func TestKVStore_Overwrite(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewKVStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", "one"))
	require.NoError(t, store.Set(ctx, "k", "two"))

	v, ok, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "two", v)
}

func TestKVStore_DeleteMany(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	store := NewKVStore(client)
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "a", "1"))
	require.NoError(t, store.Set(ctx, "b", "2"))

	require.NoError(t, store.Delete(ctx, "a", "", "b", "never-set"))

	assert.Equal(t, int64(0), client.Exists(ctx, "a", "b").Val())
	assert.NoError(t, store.Delete(ctx))
}

func TestKVStore_SetEmptyKey(t *testing.T) {
	client := setupTestRedis(t)
	defer client.Close()

	err := NewKVStore(client).Set(context.Background(), "", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "key cannot be empty")
}
