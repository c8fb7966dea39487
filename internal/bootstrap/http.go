package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	portal "github.com/uni-magazine/portal"
	"github.com/uni-magazine/portal/config"
	httpx "github.com/uni-magazine/portal/internal/http"
	"github.com/uni-magazine/portal/internal/observability/statsd"
)

const (
	defaultShutdownTimeout = 10 * time.Second
	compressionMinSize     = 1024
)

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config      *config.AppConfig
	Services    ServiceContainer
	RedisClient redis.UniversalClient
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// StartHTTPServer creates and starts the HTTP server.
// Returns the server instance for graceful shutdown and a channel that receives a
// ListenAndServe failure.
func StartHTTPServer(cfg *HTTPServerConfig) (*http.Server, <-chan error) {
	if cfg == nil {
		errCh := make(chan error)
		close(errCh)
		return nil, errCh
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config
	if appCfg == nil {
		appCfg = &config.AppConfig{}
	}

	handler := buildHTTPHandler(httpHandlerConfig{
		Logger:   logger,
		Metrics:  cfg.Metrics,
		Services: routerServices(cfg, appCfg, logger),
		HTTP:     appCfg.HTTP,
	})

	return startServer(logger, handler, appCfg.HTTP)
}

func routerServices(cfg *HTTPServerConfig, appCfg *config.AppConfig, logger *slog.Logger) httpx.RouterServices {
	services := httpx.RouterServices{
		Accounts:      cfg.Services.Accounts,
		Users:         cfg.Services.Users,
		Faculties:     cfg.Services.Faculties,
		Events:        cfg.Services.Events,
		Contributions: cfg.Services.Contributions,
		TemplateFS:    embeddedSub(portal.TemplateFS, httpx.TemplatePathFromRoot, logger),
		StaticFS:      embeddedSub(portal.StaticFS, "frontend/static", logger),
		CookieDomain:  appCfg.HTTP.CookieDomain,
		IsDev:         appCfg.IsDev,
		Logger:        logger,
	}
	// Assigned only when set so the interface never holds a typed nil.
	if cfg.Services.Auth != nil {
		services.Auth = cfg.Services.Auth
	}
	if cfg.RedisClient != nil {
		client := cfg.RedisClient
		services.Health = httpx.HealthCheckFunc(func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		})
	}
	return services
}

//nolint:ireturn // fs.Sub returns an interface
func embeddedSub(fsys fs.FS, dir string, logger *slog.Logger) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		logger.Warn("embedded assets unavailable, falling back to disk", "dir", dir, "error", err)
		return nil
	}
	return sub
}

type httpHandlerConfig struct {
	Logger   *slog.Logger
	Metrics  statsd.Sink
	Services httpx.RouterServices
	HTTP     config.HTTPConfig
}

func buildHTTPHandler(cfg httpHandlerConfig) http.Handler {
	// Order: Recover -> Logging -> Compression -> Session -> RouteGuard -> Router
	h := httpx.NewRouter(cfg.Services)
	h = httpx.RouteGuard()(h)

	if cfg.Services.Auth != nil {
		h = httpx.Session(httpx.SessionConfig{
			Sessions:     cfg.Services.Auth,
			CookieDomain: cfg.HTTP.CookieDomain,
			Logger:       cfg.Logger,
		})(h)
	}

	if cfg.HTTP.CompressionEnabled {
		cfg.Logger.Info("HTTP compression enabled", "level", cfg.HTTP.CompressionLevel)
		h = httpx.Compression(httpx.CompressionConfig{
			Level:   cfg.HTTP.CompressionLevel,
			MinSize: compressionMinSize,
			Logger:  cfg.Logger,
		})(h)
	}

	h = httpx.Logging(cfg.Logger, cfg.Metrics)(h)
	h = httpx.Recover(cfg.Logger)(h)

	return h
}

func startServer(logger *slog.Logger, handler http.Handler, cfg config.HTTPConfig) (*http.Server, <-chan error) {
	// Guard against empty addr to avoid listening on Go default
	addr := cfg.Addr
	if addr == "" {
		addr = ":8080"
	}

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed", "error", err)
			errCh <- err
		}
		close(errCh)
	}()

	return server, errCh
}

// ShutdownConfig contains dependencies for HTTP server shutdown.
type ShutdownConfig struct {
	Context context.Context
	Server  *http.Server
	// Timeout bounds the drain. Zero means 10s.
	Timeout time.Duration
	Logger  *slog.Logger
}

// ShutdownHTTPServer gracefully shuts down the HTTP server.
func ShutdownHTTPServer(cfg ShutdownConfig) error {
	if cfg.Server == nil {
		return nil
	}
	if cfg.Context == nil {
		cfg.Context = context.Background()
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultShutdownTimeout
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("shutting down HTTP server")
	}

	shutdownCtx, cancel := context.WithTimeout(cfg.Context, timeout)
	defer cancel()

	if err := cfg.Server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if cfg.Logger != nil {
		cfg.Logger.Info("HTTP server stopped")
	}
	return nil
}
