package httpx

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"

	portal "github.com/BeauMercier/drasticClientPortal"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	// TemplatePathFromRoot is the on-disk template directory relative to the repository root.
	TemplatePathFromRoot = "web/templates"
	// TemplatePathFromTest is the same directory relative to this package.
	TemplatePathFromTest = "../../web/templates"
	// StaticPathFromRoot is the on-disk static asset directory relative to the repository root.
	StaticPathFromRoot = "web/static"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Files     FileServiceInterface
	Dashboard DashboardServiceInterface
	// Readiness lists dependencies probed by /readyz.
	Readiness map[string]Pinger
	Cookies   CookieConfig
	// LoginLimiter throttles login and registration. Nil disables throttling.
	LoginLimiter   *RateLimiter
	UploadMaxBytes int64
	// MetricsPath exposes Prometheus metrics when non-empty.
	MetricsPath string
	// TemplateFS and StaticFS override the embedded/disk defaults (tests).
	TemplateFS fs.FS
	StaticFS   fs.FS
	IsDev      bool         // Development mode flag for hot reloading
	Logger     *slog.Logger // Logger for template and HTTP errors (optional)
}

func (s RouterServices) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// NewRouter creates the portal router wrapped in its middleware chain:
// Recover, Logging, Metrics, LoadSession, AccessPolicy.
func NewRouter(services RouterServices) (http.Handler, error) {
	templateFS, staticFS, err := resolveAssetFS(services)
	if err != nil {
		return nil, err
	}
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: templateFS,
		DevMode:    services.IsDev,
		Logger:     services.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create template renderer: %w", err)
	}

	mux := http.NewServeMux()
	logger := services.logger()

	authHandlers := &AuthHandlers{Svc: services.Auth, Cookies: services.Cookies, Logger: logger}
	fileHandlers := &FileHandlers{Svc: services.Files, UploadMaxBytes: services.UploadMaxBytes, Logger: logger}
	dashboardHandlers := &DashboardHandlers{Svc: services.Dashboard}
	pages := &PageHandlers{T: tr, Dashboard: services.Dashboard, Files: services.Files, Logger: logger}

	registerHealthRoutes(mux, services)
	registerAuthRoutes(mux, authHandlers, services.LoginLimiter)
	registerAPIRoutes(mux, fileHandlers, dashboardHandlers)
	registerPageRoutes(mux, pages)
	mux.Handle("GET /static/", staticWithCacheHeaders(
		http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))),
		services.IsDev,
	))

	policy := NewAccessPolicy()
	var handler http.Handler = mux
	handler = policy.Middleware(handler)
	handler = LoadSession(services.Auth, services.Cookies, logger)(handler)
	handler = Metrics(mux)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler, nil
}

func registerHealthRoutes(mux *http.ServeMux, services RouterServices) {
	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("GET /readyz", readinessHandler(services.Readiness, services.logger()))
	if services.MetricsPath != "" {
		mux.Handle("GET "+services.MetricsPath, promhttp.Handler())
	}
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, limiter *RateLimiter) {
	throttle := func(next http.HandlerFunc) http.Handler {
		if limiter == nil {
			return next
		}
		return limiter.Middleware(next)
	}
	mux.Handle("POST /api/auth/login", throttle(h.Login))
	mux.Handle("POST /api/auth/register", throttle(h.Register))
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("POST /api/auth/refresh", h.Refresh)
	mux.HandleFunc("GET /api/auth/session", h.Session)
}

func registerAPIRoutes(mux *http.ServeMux, files *FileHandlers, dashboard *DashboardHandlers) {
	mux.Handle("GET /api/dashboard", RequireAuth(http.HandlerFunc(dashboard.Summary)))
	mux.Handle("GET /api/files", RequireAuth(http.HandlerFunc(files.List)))
	mux.Handle("POST /api/files/upload", RequireAuth(http.HandlerFunc(files.Upload)))
}

func registerPageRoutes(mux *http.ServeMux, h *PageHandlers) {
	mux.HandleFunc("GET /{$}", h.Home)
	mux.HandleFunc("GET "+LoginPath, h.Login)
	mux.HandleFunc("GET "+RegisterPath, h.Register)
	mux.HandleFunc("GET "+DashboardPath, h.DashboardPage)
	mux.HandleFunc("GET /files", h.FilesPage)
	mux.HandleFunc("GET /my-info", h.MyInfo)
	mux.HandleFunc("GET /support", h.Support)
	mux.HandleFunc("GET /billing", h.Billing)
	mux.HandleFunc("/", h.NotFound)
}

// resolveAssetFS picks template and static filesystems.
// In dev mode assets are read from disk for hot reloading; otherwise the
// embedded copies are used.
func resolveAssetFS(services RouterServices) (fs.FS, fs.FS, error) {
	templateFS, staticFS := services.TemplateFS, services.StaticFS
	if services.IsDev {
		if templateFS == nil {
			templateFS = os.DirFS(TemplatePathFromRoot)
		}
		if staticFS == nil {
			staticFS = os.DirFS(StaticPathFromRoot)
		}
		return templateFS, staticFS, nil
	}

	var err error
	if templateFS == nil {
		if templateFS, err = fs.Sub(portal.TemplateFS, TemplatePathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded templates: %w", err)
		}
	}
	if staticFS == nil {
		if staticFS, err = fs.Sub(portal.StaticFS, StaticPathFromRoot); err != nil {
			return nil, nil, fmt.Errorf("embedded static assets: %w", err)
		}
	}
	return templateFS, staticFS, nil
}

// staticWithCacheHeaders wraps a static file handler to add appropriate cache headers.
func staticWithCacheHeaders(handler http.Handler, isDev bool) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if isDev {
			w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		} else {
			w.Header().Set("Cache-Control", "public, max-age=3600")
		}
		handler.ServeHTTP(w, r)
	})
}
