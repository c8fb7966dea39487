package config

import (
	"log/slog"
	"testing"
	"time"

	env "github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORTAL_API_BASE_URL", "https://api.example.edu/v1/")
	t.Setenv("SESSION_SECRET", "0123456789abcdef0123")
}

func TestAppConfig_ParseDefaults(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("NODE_ENV", "")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	cfg.Sanitize()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "https://api.example.edu/v1", cfg.PortalAPI.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.PortalAPI.Timeout)
	assert.Equal(t, uint32(5), cfg.PortalAPI.Breaker.ConsecutiveFailures)
	assert.Equal(t, 30*time.Second, cfg.PortalAPI.Breaker.OpenTimeout)
	assert.Equal(t, SessionStoreCookie, cfg.Session.Store)
	assert.Equal(t, 240*time.Hour, cfg.Session.TTL)
	assert.Equal(t, QueryCacheStoreMemory, cfg.QueryCache.Store)
	assert.Equal(t, 30*time.Second, cfg.QueryCache.TTL)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.NeedsRedis())
	assert.False(t, cfg.IsDev)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
}

func TestAppConfig_RequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]string
		missing string
	}{
		{
			name:    "missing base url",
			set:     map[string]string{"SESSION_SECRET": "0123456789abcdef"},
			missing: "PORTAL_API_BASE_URL",
		},
		{
			name:    "missing session secret",
			set:     map[string]string{"PORTAL_API_BASE_URL": "https://api.example.edu"},
			missing: "SESSION_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var cfg AppConfig
			err := env.ParseWithOptions(&cfg, env.Options{Environment: tt.set})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestAppConfig_Validate(t *testing.T) {
	base := func() AppConfig {
		cfg := AppConfig{
			PortalAPI: PortalAPIConfig{BaseURL: "https://api.example.edu"},
			Session:   SessionConfig{Secret: "0123456789abcdef"},
		}
		cfg.Sanitize()
		return cfg
	}

	cfg := base()
	require.NoError(t, cfg.Validate())

	cfg = base()
	cfg.PortalAPI.BaseURL = "ftp://api.example.edu"
	assert.ErrorContains(t, cfg.Validate(), "PORTAL_API_BASE_URL")

	cfg = base()
	cfg.PortalAPI.BaseURL = "/relative"
	assert.ErrorContains(t, cfg.Validate(), "absolute")

	cfg = base()
	cfg.Session.Secret = "short"
	assert.ErrorContains(t, cfg.Validate(), "SESSION_SECRET")

	cfg = base()
	cfg.Session.Store = SessionStoreRedis
	cfg.Redis = RedisConfig{UseCluster: true}
	assert.True(t, cfg.NeedsRedis())
	assert.ErrorContains(t, cfg.Validate(), "REDIS_CLUSTER_NODES")
}

func TestStoreKinds_Unmarshal(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("SESSION_STORE", "Redis")
	t.Setenv("QUERY_CACHE_STORE", "REDIS")
	t.Setenv("REDIS_URI", "redis.internal:6379")

	var cfg AppConfig
	require.NoError(t, env.Parse(&cfg))
	assert.Equal(t, SessionStoreRedis, cfg.Session.Store)
	assert.Equal(t, QueryCacheStoreRedis, cfg.QueryCache.Store)
	assert.Equal(t, "redis.internal:6379", cfg.Redis.URI)

	var kind SessionStoreKind
	err := kind.UnmarshalText([]byte("memcached"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid options: cookie, redis")

	var qk QueryCacheStoreKind
	require.Error(t, qk.UnmarshalText([]byte("disk")))
}

func TestHTTPConfig_Sanitize(t *testing.T) {
	tests := []struct {
		name       string
		in         HTTPConfig
		wantLevel  int
		wantDomain string
	}{
		{name: "clamps low level", in: HTTPConfig{CompressionLevel: 0}, wantLevel: 1},
		{name: "clamps high level", in: HTTPConfig{CompressionLevel: 12}, wantLevel: 9},
		{name: "keeps registrable domain", in: HTTPConfig{CompressionLevel: 6, CookieDomain: ".Magazine.Example.edu"}, wantLevel: 6, wantDomain: "magazine.example.edu"},
		{name: "drops public suffix", in: HTTPConfig{CompressionLevel: 6, CookieDomain: "co.uk"}, wantLevel: 6},
		{name: "drops hosted suffix", in: HTTPConfig{CompressionLevel: 6, CookieDomain: "github.io"}, wantLevel: 6},
		{name: "drops host with port", in: HTTPConfig{CompressionLevel: 6, CookieDomain: "example.com:8080"}, wantLevel: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.in
			cfg.Sanitize()
			assert.Equal(t, tt.wantLevel, cfg.CompressionLevel)
			assert.Equal(t, tt.wantDomain, cfg.CookieDomain)
		})
	}
}

func TestValidCookieDomain(t *testing.T) {
	assert.True(t, ValidCookieDomain(""))
	assert.True(t, ValidCookieDomain("localhost"))
	assert.True(t, ValidCookieDomain("example.com"))
	assert.True(t, ValidCookieDomain("portal.uni.ac.uk"))
	assert.False(t, ValidCookieDomain("com"))
	assert.False(t, ValidCookieDomain("ac.uk"))
}

func TestObservabilityMetricsConfig_Sanitize(t *testing.T) {
	cfg := ObservabilityMetricsConfig{Enabled: true, StatsdAddress: "  "}
	cfg.Sanitize()
	assert.False(t, cfg.IsEnabled())
	assert.Equal(t, defaultMetricsPrefix, cfg.Prefix)

	cfg = ObservabilityMetricsConfig{Enabled: true, StatsdAddress: " 10.0.0.1:8125 ", Prefix: "mag"}
	cfg.Sanitize()
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, "10.0.0.1:8125", cfg.StatsdAddress)
	assert.Equal(t, "mag", cfg.Prefix)
}

func TestAppConfig_DevModeAndLogLevel(t *testing.T) {
	t.Setenv("NODE_ENV", "development")
	cfg := AppConfig{LogLevel: " DEBUG "}
	cfg.Sanitize()
	assert.True(t, cfg.IsDev)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())

	cfg.LogLevel = "warn"
	assert.Equal(t, slog.LevelWarn, cfg.SlogLevel())
	cfg.LogLevel = "error"
	assert.Equal(t, slog.LevelError, cfg.SlogLevel())
}
