package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Register(ctx context.Context, req model.RegisterRequest) (*model.User, error)
	Authenticate(ctx context.Context, token string) (*domainauth.Session, error)
	Refresh(ctx context.Context, token string) (*service.LoginResult, error)
	Logout(ctx context.Context, token string) error
	NeedsRefresh(sess domainauth.Session) bool
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc     AuthServiceInterface
	Cookies CookieConfig
	Logger  *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type loginRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CallbackURL string `json:"callbackUrl,omitempty"`
}

type sessionResponse struct {
	User      domainauth.Identity `json:"user"`
	ExpiresAt time.Time           `json:"expiresAt"`
}

// Register handles self-service account creation.
// POST /api/auth/register.
func (h *AuthHandlers) Register(w http.ResponseWriter, r *http.Request) {
	var req model.RegisterRequest
	isForm := isFormPost(r)
	if isForm {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, RegisterPath+"?error=invalid_request", http.StatusSeeOther)
			return
		}
		req = model.RegisterRequest{
			Name:            r.PostForm.Get("name"),
			Email:           r.PostForm.Get("email"),
			Password:        r.PostForm.Get("password"),
			ConfirmPassword: r.PostForm.Get("confirmPassword"),
			CompanyName:     r.PostForm.Get("companyName"),
		}
	} else if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Register(r.Context(), req)
	if isForm {
		h.finishRegisterForm(w, r, err)
		return
	}
	if err != nil {
		switch {
		case apperrors.IsValidation(err), apperrors.IsConflict(err):
			status := http.StatusBadRequest
			if apperrors.IsConflict(err) {
				status = http.StatusConflict
			}
			WriteError(w, ErrorParams{Code: status, Message: appErrorMessage(err), Field: apperrors.GetField(err)})
		default:
			h.logger().ErrorContext(r.Context(), "registration failed", "error", err)
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: "Registration failed"})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, map[string]any{"user": user})
}

// finishRegisterForm redirects a browser registration to the next page.
func (h *AuthHandlers) finishRegisterForm(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		http.Redirect(w, r, LoginPath+"?registered=true", http.StatusSeeOther)
		return
	}
	q := url.Values{}
	switch {
	case apperrors.IsValidation(err), apperrors.IsConflict(err):
		q.Set("error", appErrorMessage(err))
	default:
		h.logger().ErrorContext(r.Context(), "registration failed", "error", err)
		q.Set("error", "Registration failed")
	}
	http.Redirect(w, r, RegisterPath+"?"+q.Encode(), http.StatusSeeOther)
}

// Login handles credential sign-in for JSON clients and HTML forms.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	isForm := isFormPost(r)

	var req loginRequest
	if isForm {
		if err := r.ParseForm(); err != nil {
			http.Redirect(w, r, loginErrorURL("", "invalid_request"), http.StatusSeeOther)
			return
		}
		req = loginRequest{
			Email:       r.PostForm.Get("email"),
			Password:    r.PostForm.Get("password"),
			CallbackURL: r.PostForm.Get(CallbackParam),
		}
	} else if !DecodeJSON(w, r, &req) {
		return
	}

	res, err := h.Svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeLoginFailure(w, r, loginFailure{err: err, form: isForm, callback: req.CallbackURL})
		return
	}

	setSessionCookie(w, r, h.Cookies, res)
	if isForm {
		http.Redirect(w, r, postLoginRedirect(req.CallbackURL), http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, sessionResponse{User: res.Session.Identity(), ExpiresAt: res.Session.ExpiresAt})
}

type loginFailure struct {
	err      error
	form     bool
	callback string
}

func (h *AuthHandlers) writeLoginFailure(w http.ResponseWriter, r *http.Request, f loginFailure) {
	invalid := errors.Is(f.err, service.ErrInvalidCredentials)
	if !invalid {
		h.logger().ErrorContext(r.Context(), "login failed", "error", f.err)
	}

	if f.form {
		code := "credentials"
		if !invalid {
			code = "unavailable"
		}
		http.Redirect(w, r, loginErrorURL(f.callback, code), http.StatusSeeOther)
		return
	}
	if invalid {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgInvalidLogin})
		return
	}
	WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: "Sign-in is temporarily unavailable"})
}

// Logout deletes the server-side session and clears the cookie.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token, _ := tokenFromRequest(r); token != "" {
		if err := h.Svc.Logout(r.Context(), token); err != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", err)
		}
	}
	clearSessionCookie(w, r, h.Cookies)

	if isFormPost(r) {
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Refresh extends the current session and reissues its token.
// POST /api/auth/refresh.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	token, _ := tokenFromRequest(r)
	res, err := h.Svc.Refresh(r.Context(), token)
	if err != nil {
		if errors.Is(err, service.ErrUnauthenticated) {
			clearSessionCookie(w, r, h.Cookies)
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgUnauthorized})
			return
		}
		h.logger().ErrorContext(r.Context(), "session refresh failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, Message: "Could not refresh session"})
		return
	}

	setSessionCookie(w, r, h.Cookies, res)
	WriteJSON(w, http.StatusOK, map[string]any{
		"user":      res.Session.Identity(),
		"expiresAt": res.Session.ExpiresAt,
		"token":     res.Token,
	})
}

// Session returns the current authentication status.
// GET /api/auth/session.
func (h *AuthHandlers) Session(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          sess.Identity(),
		"expiresAt":     sess.ExpiresAt,
	})
}

func isFormPost(r *http.Request) bool {
	ct := r.Header.Get("Content-Type")
	return strings.HasPrefix(ct, "application/x-www-form-urlencoded") || strings.HasPrefix(ct, "multipart/form-data")
}

func loginErrorURL(callback, code string) string {
	q := url.Values{}
	q.Set("error", code)
	if callback != "" {
		q.Set(CallbackParam, safeRedirectPath(callback))
	}
	return LoginPath + "?" + q.Encode()
}

func appErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
