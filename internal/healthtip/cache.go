package healthtip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/zamanlabs/medicare/internal/models"
)

const DefaultCacheKey = "medicare:health-tip:current"

// MemoryCache keeps the latest tip in process.
type MemoryCache struct {
	mu  sync.RWMutex
	tip models.HealthTip
	set bool
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

func (cache *MemoryCache) Load(context.Context) (models.HealthTip, bool, error) {
	cache.mu.RLock()
	defer cache.mu.RUnlock()
	return cache.tip, cache.set, nil
}

func (cache *MemoryCache) Store(_ context.Context, tip models.HealthTip) error {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	cache.tip = tip
	cache.set = true
	return nil
}

// RedisCache shares the latest tip between server instances. Entries expire
// after ttl so a stalled refresher cannot pin an old tip forever.
type RedisCache struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, key string, ttl time.Duration) *RedisCache {
	if key == "" {
		key = DefaultCacheKey
	}
	return &RedisCache{client: client, key: key, ttl: ttl}
}

func NewRedisClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (cache *RedisCache) Ping(ctx context.Context) error {
	return cache.client.Ping(ctx).Err()
}

func (cache *RedisCache) Load(ctx context.Context) (models.HealthTip, bool, error) {
	raw, err := cache.client.Get(ctx, cache.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.HealthTip{}, false, nil
	}
	if err != nil {
		return models.HealthTip{}, false, fmt.Errorf("load health tip: %w", err)
	}

	var tip models.HealthTip
	if err := json.Unmarshal(raw, &tip); err != nil {
		return models.HealthTip{}, false, fmt.Errorf("decode health tip: %w", err)
	}
	return tip, true, nil
}

func (cache *RedisCache) Store(ctx context.Context, tip models.HealthTip) error {
	payload, err := json.Marshal(tip)
	if err != nil {
		return fmt.Errorf("encode health tip: %w", err)
	}
	if err := cache.client.Set(ctx, cache.key, payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("store health tip: %w", err)
	}
	return nil
}
