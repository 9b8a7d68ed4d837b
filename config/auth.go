package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	minAuthSecretLen     = 32
	defaultSessionTTL    = 24 * time.Hour
	defaultRefreshWindow = time.Hour
)

// ErrAuthSecretMissing is returned by Validate when AUTH_SECRET is empty.
var ErrAuthSecretMissing = errors.New("AUTH_SECRET is required")

// AuthConfig groups session issuance and credential login configuration.
type AuthConfig struct {
	// Secret signs session tokens (HS256).
	Secret string `env:"AUTH_SECRET"`

	// Issuer is written to the iss claim and checked on parse.
	Issuer string `env:"AUTH_ISSUER" envDefault:"drastic-client-portal"`

	// SessionTTL is the lifetime of a freshly issued session.
	SessionTTL time.Duration `env:"AUTH_SESSION_TTL" envDefault:"24h"`

	// RefreshWindow limits refresh to sessions whose remaining lifetime is below it.
	RefreshWindow time.Duration `env:"AUTH_REFRESH_WINDOW" envDefault:"1h"`

	// SeedDevUsers creates the development accounts at boot. Ignored outside dev mode.
	SeedDevUsers bool `env:"AUTH_SEED_DEV_USERS" envDefault:"false"`

	// LoginRate and LoginBurst throttle login and registration per client IP.
	LoginRate  float64 `env:"AUTH_LOGIN_RATE"  envDefault:"1"`
	LoginBurst int     `env:"AUTH_LOGIN_BURST" envDefault:"5"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.Secret = strings.TrimSpace(a.Secret)
	a.Issuer = strings.TrimSpace(a.Issuer)
	if a.SessionTTL <= 0 {
		a.SessionTTL = defaultSessionTTL
	}
	if a.RefreshWindow <= 0 || a.RefreshWindow > a.SessionTTL {
		a.RefreshWindow = min(defaultRefreshWindow, a.SessionTTL)
	}
	if a.LoginRate <= 0 {
		a.LoginRate = 1
	}
	if a.LoginBurst < 1 {
		a.LoginBurst = 5
	}
}

// Validate checks the signing secret. Short secrets are tolerated in dev mode.
func (a *AuthConfig) Validate(isDev bool) error {
	if a.Secret == "" {
		return ErrAuthSecretMissing
	}
	if !isDev && len(a.Secret) < minAuthSecretLen {
		return fmt.Errorf("AUTH_SECRET must be at least %d bytes outside dev mode", minAuthSecretLen)
	}
	return nil
}
