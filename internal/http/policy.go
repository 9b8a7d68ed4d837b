package httpx

import (
	"net/http"
	"net/url"
	"strings"
)

// DefaultProtectedPrefixes are the page prefixes that require a session.
var DefaultProtectedPrefixes = []string{"/dashboard", "/my-info", "/support", "/billing", "/files"}

// Decision is the outcome of an access policy check.
type Decision int

const (
	// Allow lets the request through.
	Allow Decision = iota
	// RedirectToLogin sends an anonymous visitor to the login page.
	RedirectToLogin
	// RedirectToDashboard sends a signed-in visitor away from the auth pages.
	RedirectToDashboard
)

// AccessPolicy maps page path prefixes to "requires a session".
// Evaluation is a pure function of the path and authentication state.
type AccessPolicy struct {
	protected []string
	authPages map[string]bool
}

// NewAccessPolicy builds a policy protecting the given prefixes. With no
// prefixes, DefaultProtectedPrefixes is used.
func NewAccessPolicy(prefixes ...string) *AccessPolicy {
	if len(prefixes) == 0 {
		prefixes = DefaultProtectedPrefixes
	}
	return &AccessPolicy{
		protected: append([]string(nil), prefixes...),
		authPages: map[string]bool{LoginPath: true, RegisterPath: true},
	}
}

// Protected reports whether path falls under a protected prefix.
func (p *AccessPolicy) Protected(path string) bool {
	for _, prefix := range p.protected {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Decide evaluates the policy for a page request.
func (p *AccessPolicy) Decide(path string, authenticated bool) Decision {
	switch {
	case p.Protected(path) && !authenticated:
		return RedirectToLogin
	case authenticated && p.authPages[path]:
		return RedirectToDashboard
	default:
		return Allow
	}
}

// Middleware enforces the policy on page requests. API routes, health checks
// and static assets are left to their own handlers.
func (p *AccessPolicy) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !isPageRequest(r) {
			next.ServeHTTP(w, r)
			return
		}

		switch p.Decide(r.URL.Path, IsAuthenticated(r.Context())) {
		case RedirectToLogin:
			redirectToLogin(w, r)
		case RedirectToDashboard:
			http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func isPageRequest(r *http.Request) bool {
	path := r.URL.Path
	return !strings.HasPrefix(path, "/api/") &&
		!strings.HasPrefix(path, "/static/") &&
		path != "/healthz" && path != "/readyz" && path != "/metrics"
}

// redirectToLogin sends the browser to the login page, remembering where it was going.
func redirectToLogin(w http.ResponseWriter, r *http.Request) {
	q := url.Values{}
	q.Set(CallbackParam, safeRedirectPath(r.URL.RequestURI()))
	http.Redirect(w, r, LoginPath+"?"+q.Encode(), http.StatusSeeOther)
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") || strings.HasPrefix(candidate, "//") ||
		strings.ContainsRune(candidate, '\\') {
		return "/"
	}
	return candidate
}

// postLoginRedirect picks a local callback or falls back to the dashboard.
func postLoginRedirect(callback string) string {
	if callback == "" {
		return DashboardPath
	}
	if dest := safeRedirectPath(callback); dest != "/" || callback == "/" {
		return dest
	}
	return DashboardPath
}
