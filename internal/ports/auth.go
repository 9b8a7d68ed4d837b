package ports

// Package ports defines interfaces (hexagonal ports) for portal behavior.
// Implementations live in internal/adapters and internal/data; orchestration in internal/service.

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
)

// UserRepository persists portal accounts.
type UserRepository interface {
	Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error)
	// GetByEmail returns a NotFound error when no account matches the normalized email.
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash.
	Compare(hash, password string) error
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// TokenClaims is the verified content of a session token.
type TokenClaims struct {
	SessionID string
	UserID    string
	Email     string
	Name      string
	Role      domainauth.Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenCodec signs and verifies session tokens handed to clients.
type TokenCodec interface {
	Issue(sess domainauth.Session) (string, error)
	// Parse verifies signature, issuer and expiry.
	Parse(token string) (TokenClaims, error)
}

// ErrPasswordTooLong is returned by PasswordHasher.Hash for inputs the hash
// cannot represent.
var ErrPasswordTooLong = errors.New("password too long")

// ErrSessionNotFound is returned by SessionStore.Get for unknown or expired ids.
var ErrSessionNotFound = errors.New("session not found")
