package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/observability/metrics"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
	"github.com/BeauMercier/drasticClientPortal/internal/validation"
)

var (
	// ErrUnauthenticated is returned for missing, invalid, revoked or expired session tokens.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrEmailTaken is returned by Register when the email already has an account.
	ErrEmailTaken = apperrors.ConflictField("email", "User with this email already exists")

	errSessionExpired = errors.New("session expired")
)

const defaultSessionTTL = 24 * time.Hour

// AuthServiceConfig holds session lifetime settings.
type AuthServiceConfig struct {
	SessionTTL time.Duration
	// RefreshWindow is how close to expiry a session must be before NeedsRefresh reports true.
	RefreshWindow time.Duration
	Now           func() time.Time
}

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Credentials *CredentialValidator // Required
	Users       ports.UserRepository // Required for Register
	Hasher      ports.PasswordHasher // Required for Register
	Sessions    ports.SessionStore   // Required
	Tokens      ports.TokenCodec     // Required
	Config      AuthServiceConfig
	Logger      *slog.Logger
}

// AuthService runs the session lifecycle: login, registration, token
// verification, refresh and logout.
type AuthService struct {
	credentials *CredentialValidator
	users       ports.UserRepository
	hasher      ports.PasswordHasher
	sessions    ports.SessionStore
	tokens      ports.TokenCodec
	validate    *validation.Validator
	cfg         AuthServiceConfig
	logger      *slog.Logger
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	if opts.Credentials == nil || opts.Sessions == nil || opts.Tokens == nil {
		panic("Credentials, Sessions and Tokens are required")
	}
	cfg := opts.Config
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		credentials: opts.Credentials,
		users:       opts.Users,
		hasher:      opts.Hasher,
		sessions:    opts.Sessions,
		tokens:      opts.Tokens,
		validate:    validation.New(),
		cfg:         cfg,
		logger:      logger.With("component", "auth"),
	}
}

// LoginResult is an issued session together with its signed token.
type LoginResult struct {
	Session domainauth.Session
	Token   string
}

// Login validates credentials and issues a new session.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	identity, err := s.credentials.Validate(ctx, email, password)
	metrics.RecordAuth("login", err)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.logger.InfoContext(ctx, "login rejected", "email_domain", emailDomain(email))
		}
		return nil, err
	}

	now := s.cfg.Now().UTC()
	sess := domainauth.Session{
		ID:        uuid.NewString(),
		UserID:    identity.UserID,
		Email:     identity.Email,
		Name:      identity.Name,
		Role:      identity.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.cfg.SessionTTL),
	}
	return s.persist(ctx, sess)
}

// Register validates req and creates a client account.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.User, error) {
	if s.users == nil || s.hasher == nil {
		return nil, errors.New("registration is not configured")
	}
	req.Normalize()
	if err := s.validate.Struct(req); err != nil {
		metrics.RecordAuth("register", err)
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if errors.Is(err, ports.ErrPasswordTooLong) {
		err = apperrors.ValidationField("password", "Password is too long.")
		metrics.RecordAuth("register", err)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var company *string
	if req.CompanyName != "" {
		company = &req.CompanyName
	}
	user, err := s.users.Create(ctx, model.CreateUserRequest{
		Email:        req.Email,
		Name:         req.Name,
		CompanyName:  company,
		Role:         domainauth.RoleClient,
		PasswordHash: hash,
	})
	metrics.RecordAuth("register", err)
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user registered", "user_id", user.ID)
	return user, nil
}

// Authenticate verifies token and returns the live session it refers to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domainauth.Session, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrUnauthenticated
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("get session: %w", err)
	}

	if sess.Expired(s.cfg.Now()) {
		if delErr := s.sessions.Delete(ctx, sess.ID); delErr != nil {
			return nil, errors.Join(ErrUnauthenticated, errSessionExpired, fmt.Errorf("delete session: %w", delErr))
		}
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, errSessionExpired)
	}
	return &sess, nil
}

// Refresh extends the session behind token and issues a replacement token.
func (s *AuthService) Refresh(ctx context.Context, token string) (*LoginResult, error) {
	sess, err := s.Authenticate(ctx, token)
	if err != nil {
		return nil, err
	}
	sess.ExpiresAt = s.cfg.Now().UTC().Add(s.cfg.SessionTTL)
	return s.persist(ctx, *sess)
}

// NeedsRefresh reports whether sess expires within the refresh window.
func (s *AuthService) NeedsRefresh(sess domainauth.Session) bool {
	if s.cfg.RefreshWindow <= 0 {
		return false
	}
	return sess.ExpiresAt.Sub(s.cfg.Now()) < s.cfg.RefreshWindow
}

// Logout deletes the session behind token. Invalid or unknown tokens are a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := s.tokens.Parse(token)
	if err != nil {
		return nil //nolint:nilerr // an unverifiable token has no session to delete
	}
	if err := s.sessions.Delete(ctx, claims.SessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// SessionTTL is the lifetime applied to new and refreshed sessions.
func (s *AuthService) SessionTTL() time.Duration { return s.cfg.SessionTTL }

func (s *AuthService) persist(ctx context.Context, sess domainauth.Session) (*LoginResult, error) {
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	token, err := s.tokens.Issue(sess)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{Session: sess, Token: token}, nil
}

func emailDomain(email string) string {
	_, domain, ok := strings.Cut(model.NormalizeEmail(email), "@")
	if !ok {
		return ""
	}
	return domain
}
