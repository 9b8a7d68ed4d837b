//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
)

// User is a portal account as stored in Postgres.
type User struct {
	ID           string          `json:"id"                    db:"id"`
	Email        string          `json:"email"                 db:"email"`
	Name         string          `json:"name"                  db:"name"`
	CompanyName  *string         `json:"companyName,omitempty" db:"company_name"`
	Role         domainauth.Role `json:"role"                  db:"role"`
	PasswordHash string          `json:"-"                     db:"password_hash"`
	CreatedAt    time.Time       `json:"createdAt"             db:"created_at"`
	UpdatedAt    time.Time       `json:"updatedAt"             db:"updated_at"`
}

// Identity returns the principal view of the user.
func (u User) Identity() domainauth.Identity {
	return domainauth.Identity{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

// RegisterRequest is the self-service registration payload.
type RegisterRequest struct {
	Name            string `json:"name"                      validate:"required,max=100"`
	Email           string `json:"email"                     validate:"required,email,max=254"`
	Password        string `json:"password"                  validate:"required,min=8,max=72,maxbytes=72"`
	ConfirmPassword string `json:"confirmPassword,omitempty" validate:"omitempty,eqfield=Password"`
	CompanyName     string `json:"companyName,omitempty"     validate:"omitempty,max=200"`
}

// Normalize trims whitespace and lower-cases the email.
func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = NormalizeEmail(r.Email)
	r.CompanyName = strings.TrimSpace(r.CompanyName)
}

// CreateUserRequest is the repository input for inserting a user.
type CreateUserRequest struct {
	Email        string
	Name         string
	CompanyName  *string
	Role         domainauth.Role
	PasswordHash string
}

// NormalizeEmail is the canonical form used for lookups and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
