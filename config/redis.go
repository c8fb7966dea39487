package config

import (
	"errors"
	"time"
)

// RedisConfig contains Redis configuration.
type RedisConfig struct {
	URI                string   `env:"URI"                  envDefault:"localhost:6379"`
	Password           string   `env:"PASSWORD"             envDefault:""`
	DB                 int      `env:"DB"                   envDefault:"0"`
	SentinelNodes      []string `env:"SENTINEL_NODES"       envDefault:"localhost:26379"`
	SentinelMasterName string   `env:"SENTINEL_MASTER_NAME" envDefault:"mymaster"`
	SentinelPassword   string   `env:"SENTINEL_PASSWORD"    envDefault:""`
	UseSentinel        bool     `env:"USE_SENTINEL"         envDefault:"false"`
	ClusterNodes       []string `env:"CLUSTER_NODES"        envDefault:""`
	UseCluster         bool     `env:"USE_CLUSTER"          envDefault:"false"`
}

// Validate checks that the selected topology has addresses.
func (c *RedisConfig) Validate() error {
	switch {
	case c.UseCluster && len(c.ClusterNodes) == 0:
		return errors.New("REDIS_CLUSTER_NODES is required when REDIS_USE_CLUSTER=true")
	case c.UseSentinel && len(c.SentinelNodes) == 0:
		return errors.New("REDIS_SENTINEL_NODES is required when REDIS_USE_SENTINEL=true")
	case !c.UseCluster && !c.UseSentinel && c.URI == "":
		return errors.New("REDIS_URI is required")
	}
	return nil
}

// QueryCacheStoreKind selects the query cache backend.
type QueryCacheStoreKind string

const (
	QueryCacheStoreMemory QueryCacheStoreKind = "memory"
	QueryCacheStoreRedis  QueryCacheStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for QueryCacheStoreKind.
func (k *QueryCacheStoreKind) UnmarshalText(text []byte) error {
	v, err := parseChoice("QueryCacheStoreKind", string(text), string(QueryCacheStoreMemory), string(QueryCacheStoreRedis))
	if err != nil {
		return err
	}
	*k = QueryCacheStoreKind(v)
	return nil
}

// QueryCacheConfig controls caching of portal API reads.
type QueryCacheConfig struct {
	Store      QueryCacheStoreKind `env:"QUERY_CACHE_STORE"       envDefault:"memory"`
	TTL        time.Duration       `env:"QUERY_CACHE_TTL"         envDefault:"30s"`
	MaxEntries int                 `env:"QUERY_CACHE_MAX_ENTRIES" envDefault:"10000"`
}

// Sanitize clamps cache settings.
func (c *QueryCacheConfig) Sanitize() {
	if c.Store == "" {
		c.Store = QueryCacheStoreMemory
	}
	if c.TTL <= 0 {
		c.TTL = 30 * time.Second
	}
	if c.TTL > 10*time.Minute {
		c.TTL = 10 * time.Minute
	}
	if c.MaxEntries <= 0 {
		c.MaxEntries = 10000
	}
}
