package httpx

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	mockauth "github.com/BeauMercier/drasticClientPortal/internal/mocks/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
	"github.com/BeauMercier/drasticClientPortal/internal/testutil"
)

const testPassword = "password"

// RequireTemplateRenderer creates a TemplateRenderer for tests, skipping the test if templates are not available.
func RequireTemplateRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	tr, err := NewTemplateRenderer(TemplateRendererConfig{
		TemplateFS: os.DirFS(TemplatePathFromTest),
	})
	if err != nil {
		t.Skipf("Templates not available, skipping: %v", err)
		return nil
	}
	return tr
}

// portalHarness wires the real services to in-memory doubles behind the full router.
type portalHarness struct {
	Users    *mockauth.MemoryUserRepository
	Hasher   *mockauth.PlainHasher
	Sessions *mockauth.MemorySessionStore
	Tokens   *mockauth.StaticTokenCodec
	Storage  *mockauth.FakeStorage
	Auth     *service.AuthService
	Files    *service.FileService
	Handler  http.Handler
}

func newPortalHarness(t *testing.T, opts ...func(*RouterServices)) *portalHarness {
	t.Helper()
	if _, err := os.Stat(TemplatePathFromTest); os.IsNotExist(err) {
		t.Skip("Templates not available, skipping")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := &portalHarness{
		Users: mockauth.NewMemoryUserRepository(
			testutil.NewUser().WithID("u-admin").WithEmail("admin@drastic.digital").WithName("Admin User").
				WithRole(domainauth.RoleAdmin).WithPasswordHash("plain:"+testPassword).Build(),
			testutil.NewUser().WithID("u-client").WithEmail("client@example.com").WithName("Client User").
				WithRole(domainauth.RoleClient).WithPasswordHash("plain:"+testPassword).Build(),
		),
		Hasher:   &mockauth.PlainHasher{},
		Sessions: mockauth.NewMemorySessionStore(),
		Tokens:   mockauth.NewStaticTokenCodec(),
		Storage: &mockauth.FakeStorage{
			Folders: []model.Folder{
				{ID: "f-client", Name: "client@example.com"},
				{ID: "f-acme", Name: "Acme Corp (acme.io)"},
			},
			Children: map[string][]model.RemoteFile{
				"f-client": {
					{ID: "doc-1", Name: "proposal.pdf", MimeType: "application/pdf", Size: int64Ptr(2048),
						ModifiedTime: timePtr(time.Date(2025, 3, 4, 10, 0, 0, 0, time.UTC)), WebViewLink: "https://drive.google.com/file/d/doc-1/view"},
					{ID: "dir-1", Name: "Invoices", MimeType: model.FolderMimeType},
				},
				"f-acme": {
					{ID: "doc-2", Name: "acme-brief.docx", MimeType: "application/msword", Size: int64Ptr(1536)},
				},
			},
		},
	}

	creds := service.NewCredentialValidator(service.CredentialValidatorOptions{Users: h.Users, Hasher: h.Hasher, Logger: logger})
	h.Auth = service.NewAuthService(service.AuthServiceOptions{
		Credentials: creds,
		Users:       h.Users,
		Hasher:      h.Hasher,
		Sessions:    h.Sessions,
		Tokens:      h.Tokens,
		Config:      service.AuthServiceConfig{SessionTTL: time.Hour, RefreshWindow: time.Minute},
		Logger:      logger,
	})
	resolver := service.NewFolderResolver(service.FolderResolverOptions{Storage: h.Storage, Logger: logger})
	h.Files = service.NewFileService(service.FileServiceOptions{Storage: h.Storage, Folders: resolver, Logger: logger})

	services := RouterServices{
		Auth:           h.Auth,
		Files:          h.Files,
		Dashboard:      service.NewDashboardService(),
		Cookies:        CookieConfig{TTL: time.Hour},
		UploadMaxBytes: 1 << 20,
		MetricsPath:    "/metrics",
		TemplateFS:     os.DirFS(TemplatePathFromTest),
		StaticFS:       os.DirFS("../../web/static"),
		Logger:         logger,
	}
	for _, opt := range opts {
		opt(&services)
	}

	handler, err := NewRouter(services)
	require.NoError(t, err)
	h.Handler = handler
	return h
}

// login signs in through the service and returns the bearer token.
func (h *portalHarness) login(t *testing.T, email string) string {
	t.Helper()
	res, err := h.Auth.Login(t.Context(), email, testPassword)
	require.NoError(t, err)
	return res.Token
}

func (h *portalHarness) serve(r *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.Handler.ServeHTTP(rec, r)
	return rec
}

// withSessionCookie attaches token the way a browser would.
func withSessionCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	return r
}

func withBearer(r *http.Request, token string) *http.Request {
	r.Header.Set("Authorization", "Bearer "+token)
	return r
}

func jsonRequest(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

func formRequest(target string, form map[string]string) *http.Request {
	vals := url.Values{}
	for k, v := range form {
		vals.Set(k, v)
	}
	r := httptest.NewRequest(http.MethodPost, target, strings.NewReader(vals.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

// ContainsAll checks if a string contains all the given substrings.
func ContainsAll(s string, subs []string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}

func int64Ptr(v int64) *int64       { return &v }
func timePtr(v time.Time) *time.Time { return &v }
