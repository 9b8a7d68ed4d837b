package bootstrap

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpx "github.com/BeauMercier/drasticClientPortal/internal/http"
)

func newTestServer(t *testing.T, td testDeps) *http.Server {
	t.Helper()

	svcs, err := NewServices(td.deps)
	require.NoError(t, err)

	server, err := NewHTTPServer(&HTTPServerConfig{
		Config:    td.deps.Config,
		Services:  svcs,
		Readiness: ReadinessChecks(td.db, td.redis),
	})
	require.NoError(t, err)
	return server
}

func TestNewHTTPServer_AppliesConfig(t *testing.T) {
	td := newTestDeps(t)
	td.deps.Config.HTTP.Addr = ""
	td.deps.Config.HTTP.ReadTimeout = 7 * time.Second

	server := newTestServer(t, td)

	assert.Equal(t, ":8080", server.Addr)
	assert.Equal(t, 7*time.Second, server.ReadTimeout)
	assert.Equal(t, td.deps.Config.HTTP.WriteTimeout, server.WriteTimeout)
	assert.NotNil(t, server.ErrorLog)
}

func TestNewHTTPServer_ServesPortal(t *testing.T) {
	td := newTestDeps(t)
	server := newTestServer(t, td)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/files", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Contains(t, rec.Header().Get("Location"), "/login")

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/login", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<form")
}

func TestNewHTTPServer_Metrics(t *testing.T) {
	td := newTestDeps(t)
	td.deps.Config.Observability.MetricsEnabled = true
	td.deps.Config.Observability.MetricsPath = "/metrics"
	server := newTestServer(t, td)

	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	td = newTestDeps(t)
	td.deps.Config.Observability.MetricsEnabled = false
	server = newTestServer(t, td)

	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNewHTTPServer_Readiness(t *testing.T) {
	td := newTestDeps(t)
	server := newTestServer(t, td)

	td.db.ExpectPing()
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","checks":{"postgres":"ok","redis":"ok"}}`, rec.Body.String())

	td.mr.Close()
	td.db.ExpectPing()
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"status":"degraded","checks":{"postgres":"ok","redis":"down"}}`, rec.Body.String())
}

func TestNewHTTPServer_RequiresConfig(t *testing.T) {
	_, err := NewHTTPServer(nil)
	require.Error(t, err)
	_, err = NewHTTPServer(&HTTPServerConfig{})
	require.Error(t, err)
}

func TestReadinessChecks_SkipsNil(t *testing.T) {
	assert.Empty(t, ReadinessChecks(nil, nil))

	checks := ReadinessChecks(httpx.PingFunc(func(context.Context) error { return nil }), nil)
	assert.Len(t, checks, 1)
	assert.Contains(t, checks, "postgres")
}

func TestRunHTTPServer_StopsOnCancel(t *testing.T) {
	server := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	ctx, cancel := context.WithCancel(t.Context())

	done := make(chan error, 1)
	go func() { done <- RunHTTPServer(ctx, server, nil) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop after cancel")
	}
}

func TestRunHTTPServer_ListenFailure(t *testing.T) {
	server := &http.Server{Addr: "127.0.0.1:-1", ReadHeaderTimeout: time.Second}

	err := RunHTTPServer(t.Context(), server, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "http server")
}

func TestRunHTTPServer_RequiresServer(t *testing.T) {
	err := RunHTTPServer(t.Context(), nil, nil)
	require.Error(t, err)
	assert.False(t, errors.Is(err, http.ErrServerClosed))
}
