package config

import (
	"errors"
	"strings"
	"time"
)

// Drive scopes requested by the service account.
var DefaultDriveScopes = []string{
	"https://www.googleapis.com/auth/drive",
	"https://www.googleapis.com/auth/drive.file",
	"https://www.googleapis.com/auth/drive.readonly",
}

// StorageConfig holds the Google Drive service account used for client folders.
type StorageConfig struct {
	ClientEmail string `env:"GOOGLE_CLIENT_EMAIL"`
	// PrivateKey is the PEM key. Env files often carry it with escaped newlines.
	PrivateKey string `env:"GOOGLE_PRIVATE_KEY"`
	// Endpoint overrides the Drive base URL (emulators, tests).
	Endpoint string        `env:"GOOGLE_DRIVE_ENDPOINT"`
	Timeout  time.Duration `env:"GOOGLE_DRIVE_TIMEOUT"  envDefault:"30s"`
	Scopes   []string      `env:"GOOGLE_DRIVE_SCOPES"   envSeparator:","`
}

// Sanitize normalises the private key and fills defaults.
func (s *StorageConfig) Sanitize() {
	s.ClientEmail = strings.TrimSpace(s.ClientEmail)
	s.PrivateKey = NormalizePrivateKey(s.PrivateKey)
	s.Endpoint = strings.TrimSpace(s.Endpoint)
	if s.Timeout <= 0 {
		s.Timeout = 30 * time.Second
	}
	if len(s.Scopes) == 0 {
		s.Scopes = append([]string(nil), DefaultDriveScopes...)
	}
}

// Validate reports missing service account credentials.
func (s *StorageConfig) Validate() error {
	var errs []error
	if s.ClientEmail == "" {
		errs = append(errs, errors.New("GOOGLE_CLIENT_EMAIL is required"))
	}
	if s.PrivateKey == "" {
		errs = append(errs, errors.New("GOOGLE_PRIVATE_KEY is required"))
	}
	return errors.Join(errs...)
}

// NormalizePrivateKey turns literal \n sequences into newlines and strips
// surrounding quotes left by some env file writers.
func NormalizePrivateKey(key string) string {
	key = strings.TrimSpace(key)
	key = strings.Trim(key, `"`)
	return strings.ReplaceAll(key, `\n`, "\n")
}
