package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/uni-magazine/portal/internal/ports"
)

var _ ports.QueryCacheStore = (*QueryCacheStore)(nil)

// QueryCacheStore shares cached query results and entity generations across portal instances.
type QueryCacheStore struct {
	client redis.UniversalClient
	prefix string
}

// NewQueryCacheStore creates a QueryCacheStore with the default key prefix.
func NewQueryCacheStore(client redis.UniversalClient) *QueryCacheStore {
	return NewQueryCacheStoreWithPrefix(client, "portal:qc:")
}

// NewQueryCacheStoreWithPrefix creates a QueryCacheStore with a custom key prefix.
func NewQueryCacheStoreWithPrefix(client redis.UniversalClient, prefix string) *QueryCacheStore {
	return &QueryCacheStore{client: client, prefix: prefix}
}

// Get returns the value stored under key.
func (s *QueryCacheStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, errors.New("key cannot be empty")
	}
	data, err := s.client.Get(ctx, s.prefix+"v:"+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get: %w", err)
	}
	return data, true, nil
}

// Set stores value under key with ttl; ttl <= 0 keeps it until evicted.
func (s *QueryCacheStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if key == "" {
		return errors.New("key cannot be empty")
	}
	if ttl < 0 {
		ttl = 0
	}
	if err := s.client.Set(ctx, s.prefix+"v:"+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Generation returns the current generation for entity.
func (s *QueryCacheStore) Generation(ctx context.Context, entity string) (int64, error) {
	n, err := s.client.Get(ctx, s.genKey(entity)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return n, nil
}

// Bump atomically increments the generation for entity.
func (s *QueryCacheStore) Bump(ctx context.Context, entity string) (int64, error) {
	n, err := s.client.Incr(ctx, s.genKey(entity)).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr generation: %w", err)
	}
	return n, nil
}

// Health checks the health of the Redis connection.
func (s *QueryCacheStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *QueryCacheStore) genKey(entity string) string {
	return s.prefix + "gen:" + entity
}
