package healthtip

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zamanlabs/medicare/internal/models"
)

func setupTestRedisCache(t *testing.T, ttl time.Duration) (*miniredis.Miniredis, *RedisCache) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client, "", ttl)
}

func TestMemoryCacheStoresLatestTip(t *testing.T) {
	cache := NewMemoryCache()
	ctx := context.Background()

	_, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, cache.Store(ctx, models.HealthTip{Text: "first"}))
	require.NoError(t, cache.Store(ctx, models.HealthTip{Text: "second"}))

	tip, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "second", tip.Text)
}

func TestRedisCacheRoundTrip(t *testing.T) {
	_, cache := setupTestRedisCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx))

	_, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "empty cache must report a miss")

	generatedAt := time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, cache.Store(ctx, models.HealthTip{
		Text:        "Stretch for five minutes.",
		Source:      models.HealthTipSourceGenerated,
		GeneratedAt: generatedAt,
	}))

	tip, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Stretch for five minutes.", tip.Text)
	assert.Equal(t, models.HealthTipSourceGenerated, tip.Source)
	assert.True(t, tip.GeneratedAt.Equal(generatedAt))
}

func TestRedisCacheEntriesExpire(t *testing.T) {
	mr, cache := setupTestRedisCache(t, 2*time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, models.HealthTip{Text: "tip"}))
	assert.Equal(t, 2*time.Minute, mr.TTL(DefaultCacheKey))

	mr.FastForward(3 * time.Minute)
	_, ok, err := cache.Load(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisCacheRejectsCorruptPayload(t *testing.T) {
	mr, cache := setupTestRedisCache(t, time.Minute)
	require.NoError(t, mr.Set(DefaultCacheKey, "{not json"))

	_, ok, err := cache.Load(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestRedisCacheReportsConnectionErrors(t *testing.T) {
	mr, cache := setupTestRedisCache(t, time.Minute)
	mr.Close()

	_, _, err := cache.Load(context.Background())
	assert.Error(t, err)
}
