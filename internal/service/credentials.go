package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

// ErrInvalidCredentials is returned for any failed email/password check.
// The cause is intentionally not distinguished.
var ErrInvalidCredentials = errors.New("invalid email or password")

// dummyPassword is hashed once and compared against when the user does not exist.
const dummyPassword = "drastic-portal-timing-equalizer"

// CredentialValidatorOptions groups dependencies for CredentialValidator.
type CredentialValidatorOptions struct {
	Users  ports.UserRepository // Required
	Hasher ports.PasswordHasher // Required
	Logger *slog.Logger         // Optional
}

// CredentialValidator checks an email/password pair against the user store.
type CredentialValidator struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	logger *slog.Logger

	dummyOnce sync.Once
	dummyHash string
}

// NewCredentialValidator constructs a CredentialValidator.
func NewCredentialValidator(opts CredentialValidatorOptions) *CredentialValidator {
	if opts.Users == nil {
		panic("UserRepository is required")
	}
	if opts.Hasher == nil {
		panic("PasswordHasher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &CredentialValidator{
		users:  opts.Users,
		hasher: opts.Hasher,
		logger: logger.With("component", "credentials"),
	}
}

// Validate returns the identity for a matching email/password pair.
// Unknown users, wrong passwords and empty input all yield ErrInvalidCredentials;
// only store failures surface as other errors.
func (v *CredentialValidator) Validate(ctx context.Context, email, password string) (*domainauth.Identity, error) {
	email = model.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			v.equalizeTiming(ctx, password)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := v.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	identity := user.Identity()
	return &identity, nil
}

// equalizeTiming spends one hash comparison so unknown emails cost the same as wrong passwords.
func (v *CredentialValidator) equalizeTiming(ctx context.Context, password string) {
	v.dummyOnce.Do(func() {
		h, err := v.hasher.Hash(dummyPassword)
		if err != nil {
			v.logger.WarnContext(ctx, "dummy hash unavailable", "error", err)
			return
		}
		v.dummyHash = h
	})
	if v.dummyHash != "" {
		_ = v.hasher.Compare(v.dummyHash, password)
	}
}
