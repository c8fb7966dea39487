package ports

import (
	"context"
	"time"
)

// QueryCacheStore backs the read-through query cache.
//
// Values are opaque encoded query results. Generations are per-entity counters that are
// embedded in value keys; bumping one makes every key built from the old value unreachable.
type QueryCacheStore interface {
	// Get returns the cached value and whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores value under key for ttl. A ttl <= 0 stores without expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Generation returns the current generation of entity, 0 if never bumped.
	Generation(ctx context.Context, entity string) (int64, error)
	// Bump increments the generation of entity and returns the new value.
	Bump(ctx context.Context, entity string) (int64, error)
}
