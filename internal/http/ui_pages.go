package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
)

// loginErrors maps the error codes carried back to /login onto banner text.
var loginErrors = map[string]string{
	"credentials":     msgInvalidLogin,
	"unavailable":     "Sign-in is temporarily unavailable. Please try again.",
	"invalid_request": "Something went wrong. Please try again.",
}

// PageHandlers serves the server-rendered portal pages.
type PageHandlers struct {
	T         *TemplateRenderer
	Dashboard DashboardServiceInterface
	Files     FileServiceInterface
	Logger    *slog.Logger
}

// logger returns the configured logger or falls back to slog.Default().
func (h *PageHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Home renders the public landing page.
func (h *PageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, NewTemplateData(r, PageMeta{Title: "Drastic Digital", PageTitle: "Client Portal", CurrentPage: PageHome}).Build())
}

// Login renders the sign-in form.
func (h *PageHandlers) Login(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	b := NewTemplateData(r, PageMeta{Title: "Sign in", PageTitle: "Sign in to your account", CurrentPage: PageLogin}).
		With("CallbackURL", postLoginRedirect(q.Get(CallbackParam)))
	if code := q.Get("error"); code != "" {
		msg, ok := loginErrors[code]
		if !ok {
			msg = loginErrors["invalid_request"]
		}
		b.WithError(msg)
	}
	if q.Get("registered") == "true" {
		b.WithNotice("Registration successful. Please sign in.")
	}
	h.render(w, r, b.Build())
}

// Register renders the self-service registration form.
func (h *PageHandlers) Register(w http.ResponseWriter, r *http.Request) {
	b := NewTemplateData(r, PageMeta{Title: "Register", PageTitle: "Create an account", CurrentPage: PageRegister}).
		WithError(r.URL.Query().Get("error"))
	h.render(w, r, b.Build())
}

// DashboardPage renders the signed-in overview.
func (h *PageHandlers) DashboardPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}
	summary := h.Dashboard.Summary(r.Context(), sess.Identity())
	h.render(w, r, NewTemplateData(r, PageMeta{Title: "Dashboard", PageTitle: "Dashboard", CurrentPage: PageDashboard}).
		With("Summary", summary).
		Build())
}

// FilesPage renders the client's folder listing with an upload form.
func (h *PageHandlers) FilesPage(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		redirectToLogin(w, r)
		return
	}

	q := r.URL.Query()
	b := NewTemplateData(r, PageMeta{Title: "Files", PageTitle: "Your Files", CurrentPage: PageFiles}).
		WithError(q.Get("error"))
	if name := q.Get("uploaded"); name != "" {
		b.WithNotice("Uploaded " + name)
	}

	email := effectiveClientEmail(sess, q.Get("clientEmail"))
	folderID, files, err := h.listFolder(r.Context(), q.Get("folderId"), email)
	switch {
	case errors.Is(err, service.ErrFolderNotFound):
		b.WithError(msgNoFolder)
	case errors.Is(err, service.ErrFolderRequired):
		b.WithError(msgNoFolderForListing)
	case err != nil:
		h.logger().ErrorContext(r.Context(), "error fetching files", "error", err)
		b.WithError("Failed to fetch files. Please try again later.")
	}

	h.render(w, r, b.
		With("FolderID", folderID).
		With("Files", files).
		With("ClientEmail", strings.TrimSpace(q.Get("clientEmail"))).
		Build())
}

func (h *PageHandlers) listFolder(ctx context.Context, folderID, email string) (string, []model.FileEntry, error) {
	if h.Files == nil {
		return "", nil, errors.New("file service unavailable")
	}
	id, err := h.Files.TargetFolder(ctx, folderID, email)
	if err != nil {
		return "", nil, err
	}
	files, err := h.Files.List(ctx, id)
	return id, files, err
}

// MyInfo renders the signed-in user's profile.
func (h *PageHandlers) MyInfo(w http.ResponseWriter, r *http.Request) {
	h.static(w, r, PageMeta{Title: "My Info", PageTitle: "My Information", CurrentPage: PageMyInfo})
}

// Support renders the support contact page.
func (h *PageHandlers) Support(w http.ResponseWriter, r *http.Request) {
	h.static(w, r, PageMeta{Title: "Support", PageTitle: "Support", CurrentPage: PageSupport})
}

// Billing renders the billing overview.
func (h *PageHandlers) Billing(w http.ResponseWriter, r *http.Request) {
	h.static(w, r, PageMeta{Title: "Billing", PageTitle: "Billing", CurrentPage: PageBilling})
}

// NotFound answers unmatched routes: JSON for the API, a page otherwise.
func (h *PageHandlers) NotFound(w http.ResponseWriter, r *http.Request) {
	if strings.HasPrefix(r.URL.Path, "/api/") || r.Method != http.MethodGet {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, Message: msgNotFound})
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Not found", PageTitle: "Page not found", CurrentPage: "not-found"}).
		With("Path", r.URL.Path).
		Build()
	if err := h.T.RenderStatus(w, http.StatusNotFound, data); err != nil {
		http.NotFound(w, r)
	}
}

func (h *PageHandlers) static(w http.ResponseWriter, r *http.Request, meta PageMeta) {
	h.render(w, r, NewTemplateData(r, meta).Build())
}

func (h *PageHandlers) render(w http.ResponseWriter, r *http.Request, data map[string]any) {
	if err := h.T.Render(w, data); err != nil {
		h.logger().ErrorContext(r.Context(), "page render failed",
			"page", data["CurrentPage"],
			"error", err,
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
