package jwttoken

// Package jwttoken signs session tokens as HS256 JWTs carrying the session id.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

var _ ports.TokenCodec = (*Codec)(nil)

var (
	// ErrInvalidToken wraps every parse or verification failure.
	ErrInvalidToken = errors.New("invalid session token")
	// ErrMissingSecret is returned by NewCodec without a signing secret.
	ErrMissingSecret = errors.New("token signing secret is required")
)

// Config holds token signing configuration.
type Config struct {
	Secret string
	Issuer string
	// Leeway tolerates clock skew on exp/iat checks.
	Leeway time.Duration
	// Now overrides the verification clock (tests).
	Now func() time.Time
}

// sessionClaims is the JWT body. Expiry comes from the session, not the codec.
type sessionClaims struct {
	Sid   string          `json:"sid"`
	Email string          `json:"email"`
	Name  string          `json:"name"`
	Role  domainauth.Role `json:"role"`
	jwt.RegisteredClaims
}

// Codec issues and verifies session tokens.
type Codec struct {
	secret []byte
	issuer string
	parser *jwt.Parser
}

// NewCodec creates a codec from cfg.
func NewCodec(cfg Config) (*Codec, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSecret
	}
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Now != nil {
		opts = append(opts, jwt.WithTimeFunc(cfg.Now))
	}
	return &Codec{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		parser: jwt.NewParser(opts...),
	}, nil
}

// Issue signs a token for sess.
func (c *Codec) Issue(sess domainauth.Session) (string, error) {
	if sess.ID == "" {
		return "", errors.New("session ID cannot be empty")
	}
	claims := sessionClaims{
		Sid:   sess.ID,
		Email: sess.Email,
		Name:  sess.Name,
		Role:  sess.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    c.issuer,
			Subject:   sess.UserID,
			IssuedAt:  jwt.NewNumericDate(sess.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Parse verifies the token and returns its claims.
func (c *Codec) Parse(token string) (ports.TokenClaims, error) {
	var claims sessionClaims
	parsed, err := c.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		return ports.TokenClaims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Sid == "" {
		return ports.TokenClaims{}, ErrInvalidToken
	}

	out := ports.TokenClaims{
		SessionID: claims.Sid,
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
	}
	if claims.IssuedAt != nil {
		out.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
