package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/BeauMercier/drasticClientPortal/config"
	httpx "github.com/BeauMercier/drasticClientPortal/internal/http"
)

// shutdownTimeout bounds how long in-flight requests get to finish.
const shutdownTimeout = 10 * time.Second

// HTTPServerConfig contains configuration for HTTP server.
type HTTPServerConfig struct {
	Config   *config.AppConfig
	Services ServiceContainer
	// Readiness lists dependencies probed by /readyz.
	Readiness map[string]httpx.Pinger
	Logger    *slog.Logger
}

// ReadinessChecks builds the /readyz probes for the shared stores. Nil
// dependencies are skipped.
func ReadinessChecks(db httpx.Pinger, rdb redis.UniversalClient) map[string]httpx.Pinger {
	checks := make(map[string]httpx.Pinger, 2)
	if db != nil {
		checks["postgres"] = db
	}
	if rdb != nil {
		checks["redis"] = httpx.PingFunc(func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		})
	}
	return checks
}

// NewHTTPServer builds the portal router and wraps it in an http.Server
// configured from cfg. The server is not started.
func NewHTTPServer(cfg *HTTPServerConfig) (*http.Server, error) {
	if cfg == nil || cfg.Config == nil {
		return nil, errors.New("http server config is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	appCfg := cfg.Config

	services := httpx.RouterServices{
		Auth:      cfg.Services.Auth,
		Files:     cfg.Services.Files,
		Dashboard: cfg.Services.Dashboard,
		Readiness: cfg.Readiness,
		Cookies: httpx.CookieConfig{
			Domain: appCfg.HTTP.CookieDomain,
			TTL:    appCfg.Auth.SessionTTL,
		},
		LoginLimiter:   httpx.NewRateLimiter(appCfg.Auth.LoginRate, appCfg.Auth.LoginBurst),
		UploadMaxBytes: appCfg.HTTP.UploadMaxBytes,
		IsDev:          appCfg.IsDev,
		Logger:         logger,
	}
	if appCfg.Observability.MetricsEnabled {
		services.MetricsPath = appCfg.Observability.MetricsPath
	}

	handler, err := httpx.NewRouter(services)
	if err != nil {
		return nil, fmt.Errorf("build router: %w", err)
	}

	addr := appCfg.HTTP.Addr
	// Guard against empty addr to avoid listening on Go default
	if addr == "" {
		addr = ":8080"
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       appCfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      appCfg.HTTP.WriteTimeout,
		IdleTimeout:       appCfg.HTTP.IdleTimeout,
		ErrorLog:          slog.NewLogLogger(logger.Handler(), slog.LevelWarn),
	}, nil
}

// RunHTTPServer serves until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout. A listener failure is returned.
func RunHTTPServer(ctx context.Context, server *http.Server, logger *slog.Logger) error {
	if server == nil {
		return errors.New("http server is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.InfoContext(gctx, "starting HTTP server", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.InfoContext(gctx, "shutting down HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(gctx), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.InfoContext(shutdownCtx, "HTTP server stopped")
		return nil
	})

	return g.Wait()
}
