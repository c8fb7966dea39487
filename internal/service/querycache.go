package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	domainauth "github.com/uni-magazine/portal/internal/domain/auth"
	"github.com/uni-magazine/portal/internal/observability/metrics"
	"github.com/uni-magazine/portal/internal/observability/statsd"
	"github.com/uni-magazine/portal/internal/ports"
)

// Cached entity names. Each has its own generation counter.
const (
	entityUsers         = "users"
	entityFaculties     = "faculties"
	entityEvents        = "events"
	entityContributions = "contributions"
	entityComments      = "comments"
)

// DefaultQueryCacheTTL bounds how long a cached read is served.
const DefaultQueryCacheTTL = 30 * time.Second

// DefaultSharedFetchTimeout bounds an upstream read shared by concurrent callers.
const DefaultSharedFetchTimeout = 30 * time.Second

// QueryCacheConfig holds optional QueryCache settings.
type QueryCacheConfig struct {
	TTL time.Duration
	// FetchTimeout bounds a shared upstream read. It runs detached from any one caller.
	FetchTimeout time.Duration
	Metrics      statsd.Sink
}

// QueryCacheOptions groups dependencies for QueryCache.
type QueryCacheOptions struct {
	Store  ports.QueryCacheStore
	Config QueryCacheConfig
	Logger *slog.Logger
}

// QueryCache is a read-through cache for portal API queries.
//
// Keys embed the entity's generation, so bumping a generation orphans every cached read of
// that entity. Concurrent identical reads share one upstream call. Store failures degrade to
// direct fetches. A nil *QueryCache always fetches directly.
type QueryCache struct {
	store        ports.QueryCacheStore
	ttl          time.Duration
	fetchTimeout time.Duration
	metrics      statsd.Sink
	logger       *slog.Logger
	group        singleflight.Group
}

// NewQueryCache constructs a QueryCache.
func NewQueryCache(opts QueryCacheOptions) *QueryCache {
	if opts.Store == nil {
		panic("QueryCacheStore is required")
	}
	ttl := opts.Config.TTL
	if ttl <= 0 {
		ttl = DefaultQueryCacheTTL
	}
	fetchTimeout := opts.Config.FetchTimeout
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultSharedFetchTimeout
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &QueryCache{
		store:        opts.Store,
		ttl:          ttl,
		fetchTimeout: fetchTimeout,
		metrics:      opts.Config.Metrics,
		logger:       logger.With("component", "query_cache"),
	}
}

// cacheQuery identifies one cached read.
type cacheQuery struct {
	entity string
	scope  string
	filter string
}

func (q cacheQuery) key(gen int64) string {
	var b strings.Builder
	b.WriteString(q.entity)
	b.WriteString(":g")
	b.WriteString(strconv.FormatInt(gen, 10))
	b.WriteString(":")
	b.WriteString(q.scope)
	if q.filter != "" {
		b.WriteString(":")
		b.WriteString(q.filter)
	}
	return b.String()
}

// sessionScope partitions cached reads per signed-in user; the API filters by caller.
func sessionScope(sess domainauth.Session) string {
	return "u" + strconv.Itoa(sess.User.UserID) + "." + sess.User.RoleID.Name()
}

// readThrough serves q from cache or calls fetch and caches its result.
func readThrough[T any](ctx context.Context, c *QueryCache, q cacheQuery, fetch func(context.Context) (T, error)) (T, error) {
	if c == nil {
		return fetch(ctx)
	}

	gen, err := c.store.Generation(ctx, q.entity)
	if err != nil {
		c.logger.WarnContext(ctx, "query cache generation lookup failed", "entity", q.entity, "error", err)
		return fetch(ctx)
	}
	key := q.key(gen)

	raw, ok, err := c.store.Get(ctx, key)
	switch {
	case err != nil:
		c.logger.WarnContext(ctx, "query cache read failed", "key", key, "error", err)
	case ok:
		var cached T
		decErr := json.Unmarshal(raw, &cached)
		if decErr == nil {
			metrics.EmitCacheLookup(c.metrics, q.entity, true)
			return cached, nil
		}
		c.logger.WarnContext(ctx, "query cache entry undecodable", "key", key, "error", decErr)
	}
	metrics.EmitCacheLookup(c.metrics, q.entity, false)

	// The shared fetch outlives any single caller, so one disconnect cannot fail the others.
	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.fetchTimeout)
		defer cancel()
		out, fetchErr := fetch(fetchCtx)
		if fetchErr != nil {
			return nil, fetchErr
		}
		return sharedResult{value: out, raw: c.put(fetchCtx, key, out)}, nil
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		shared := res.Val.(sharedResult)
		if !res.Shared || shared.raw == nil {
			return shared.value.(T), nil
		}
		// Each waiter decodes its own copy; callers sort and trim results in place.
		var own T
		if err := json.Unmarshal(shared.raw, &own); err != nil {
			return zero, err
		}
		return own, nil
	}
}

// sharedResult is what one upstream fetch hands to every waiting caller.
type sharedResult struct {
	value any
	raw   []byte
}

// put caches value and returns its encoding, or nil when it cannot be encoded.
func (c *QueryCache) put(ctx context.Context, key string, value any) []byte {
	raw, err := json.Marshal(value)
	if err != nil {
		c.logger.WarnContext(ctx, "query cache encode failed", "key", key, "error", err)
		return nil
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		c.logger.WarnContext(ctx, "query cache write failed", "key", key, "error", err)
	}
	return raw
}

// Invalidate bumps the generation of each entity. Failures are logged; entries then
// age out by TTL.
func (c *QueryCache) Invalidate(ctx context.Context, entities ...string) {
	if c == nil {
		return
	}
	for _, entity := range entities {
		if _, err := c.store.Bump(ctx, entity); err != nil {
			c.logger.WarnContext(ctx, "query cache invalidation failed", "entity", entity, "error", err)
		}
	}
}
