package storage

import (
	"context"

	"quickcare/internal/cache"
)

const redisKeyPrefix = "quickcare:"

// RedisStore persists entries through the fail-safe cache client.
type RedisStore struct {
	cache *cache.Client
}

// NewRedisStore creates a store over an existing cache client.
func NewRedisStore(c *cache.Client) *RedisStore {
	return &RedisStore{cache: c}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.cache.Get(ctx, redisKeyPrefix+key)
}

// Set stores without expiry; session lifetime is enforced by the session manager.
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	return s.cache.Set(ctx, redisKeyPrefix+key, value, 0)
}

func (s *RedisStore) Delete(ctx context.Context, keys ...string) error {
	prefixed := make([]string, len(keys))
	for i, k := range keys {
		prefixed[i] = redisKeyPrefix + k
	}
	return s.cache.Delete(ctx, prefixed...)
}
