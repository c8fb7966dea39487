package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/uni-magazine/portal/config"
	"github.com/uni-magazine/portal/internal/adapters/cookiesession"
	"github.com/uni-magazine/portal/internal/adapters/memcache"
	"github.com/uni-magazine/portal/internal/adapters/portalapi"
	redisadapter "github.com/uni-magazine/portal/internal/adapters/redis"
	"github.com/uni-magazine/portal/internal/observability/statsd"
	"github.com/uni-magazine/portal/internal/ports"
	"github.com/uni-magazine/portal/internal/service"
)

// ServiceContainer holds every service the HTTP layer uses.
type ServiceContainer struct {
	Auth          *service.AuthService
	Accounts      *service.AccountService
	Users         *service.UserService
	Faculties     *service.FacultyService
	Events        *service.EventService
	Contributions *service.ContributionService
}

// ServiceDeps contains dependencies for building services.
type ServiceDeps struct {
	Config *config.AppConfig
	// RedisClient is required when the session store or query cache uses Redis.
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
	// API overrides the portal API client; tests use it to inject fakes.
	API ports.PortalAPI
}

// NewServices builds the portal API client, stores and services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if deps == nil || deps.Config == nil {
		return ServiceContainer{}, errors.New("service config is required")
	}
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := deps.API
	if api == nil {
		client, err := newPortalAPIClient(cfg.PortalAPI, deps.Metrics, logger)
		if err != nil {
			return ServiceContainer{}, err
		}
		api = client
	}

	sessions, err := newSessionStore(cfg.Session, deps.RedisClient)
	if err != nil {
		return ServiceContainer{}, err
	}

	cache, err := newQueryCache(cfg.QueryCache, deps.RedisClient, deps.Metrics, logger)
	if err != nil {
		return ServiceContainer{}, err
	}

	return ServiceContainer{
		Auth: service.NewAuthService(service.AuthServiceOptions{
			Authenticator: api,
			Sessions:      sessions,
			Config: service.AuthConfig{
				TTL:     cfg.Session.TTL,
				Metrics: deps.Metrics,
				Logger:  logger,
			},
		}),
		Accounts:      service.NewAccountService(service.AccountServiceOptions{API: api, Cache: cache}),
		Users:         service.NewUserService(service.UserServiceOptions{API: api, Cache: cache}),
		Faculties:     service.NewFacultyService(service.FacultyServiceOptions{API: api, Cache: cache}),
		Events:        service.NewEventService(service.EventServiceOptions{API: api, Cache: cache}),
		Contributions: service.NewContributionService(service.ContributionServiceOptions{API: api, Cache: cache}),
	}, nil
}

func newPortalAPIClient(cfg config.PortalAPIConfig, metrics statsd.Sink, logger *slog.Logger) (*portalapi.Client, error) {
	client, err := portalapi.New(portalapi.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
		Breaker: portalapi.BreakerConfig{
			MaxRequests:         cfg.Breaker.HalfOpenRequests,
			Interval:            cfg.Breaker.Interval,
			Timeout:             cfg.Breaker.OpenTimeout,
			ConsecutiveFailures: cfg.Breaker.ConsecutiveFailures,
		},
		Metrics: metrics,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create portal API client: %w", err)
	}
	return client, nil
}

//nolint:ireturn // the store kind is picked at runtime
func newSessionStore(cfg config.SessionConfig, client redis.UniversalClient) (ports.SessionStore, error) {
	switch cfg.Store {
	case config.SessionStoreRedis:
		if client == nil {
			return nil, errors.New("redis session store selected but redis is not connected")
		}
		return redisadapter.NewSessionStore(client), nil
	default:
		store, err := cookiesession.New(cfg.Secret)
		if err != nil {
			return nil, fmt.Errorf("create cookie session store: %w", err)
		}
		return store, nil
	}
}

func newQueryCache(
	cfg config.QueryCacheConfig,
	client redis.UniversalClient,
	metrics statsd.Sink,
	logger *slog.Logger,
) (*service.QueryCache, error) {
	var store ports.QueryCacheStore
	switch cfg.Store {
	case config.QueryCacheStoreRedis:
		if client == nil {
			return nil, errors.New("redis query cache selected but redis is not connected")
		}
		store = redisadapter.NewQueryCacheStore(client)
	default:
		mem, err := memcache.New(memcache.Options{MaxEntries: cfg.MaxEntries})
		if err != nil {
			return nil, err
		}
		store = mem
	}
	return service.NewQueryCache(service.QueryCacheOptions{
		Store:  store,
		Config: service.QueryCacheConfig{TTL: cfg.TTL, Metrics: metrics},
		Logger: logger,
	}), nil
}

// NewMetricsClient builds the StatsD client. A disabled config yields a no-op client.
func NewMetricsClient(cfg config.ObservabilityMetricsConfig, logger *slog.Logger) (*statsd.Client, error) {
	client, err := statsd.NewClient(statsd.Config{
		Enabled: cfg.IsEnabled(),
		Address: cfg.StatsdAddress,
		Prefix:  cfg.Prefix,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create statsd client: %w", err)
	}
	return client, nil
}

// RunConfig contains everything Run needs to serve until a shutdown signal.
type RunConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM, then shuts it down.
func Run(ctx context.Context, cfg *RunConfig) error {
	if cfg == nil || cfg.Config == nil {
		return errors.New("run config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	server, serveErr := StartHTTPServer(&HTTPServerConfig{
		Config:      cfg.Config,
		Services:    cfg.Services,
		RedisClient: cfg.RedisClient,
		Metrics:     cfg.Metrics,
		Logger:      logger,
	})

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serveErr:
		runErr = err
	}

	// Shutdown uses a fresh context since ctx is already cancelled.
	shutdownErr := ShutdownHTTPServer(ShutdownConfig{
		Context: context.WithoutCancel(ctx),
		Server:  server,
		Timeout: cfg.Config.HTTP.ShutdownTimeout,
		Logger:  logger,
	})
	return errors.Join(runErr, shutdownErr)
}
