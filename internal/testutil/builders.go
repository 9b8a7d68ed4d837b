// Package testutil provides testing utilities and helpers for the client portal.
package testutil

import (
	"strings"
	"time"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
)

// UserBuilder provides a fluent interface for building model.User values in tests.
type UserBuilder struct {
	user model.User
}

// NewUser creates a UserBuilder for a client account with sensible defaults.
// The password hash defaults to the "plain:" format understood by mocks.PlainHasher.
func NewUser() *UserBuilder {
	return &UserBuilder{
		user: model.User{
			ID:           "user-1",
			Email:        "client@example.com",
			Name:         "Client User",
			Role:         domainauth.RoleClient,
			PasswordHash: "plain:password",
			CreatedAt:    TestTime(),
			UpdatedAt:    TestTime(),
		},
	}
}

// WithID sets the user id.
func (b *UserBuilder) WithID(id string) *UserBuilder {
	b.user.ID = id
	return b
}

// WithEmail sets the email in canonical form.
func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.user.Email = strings.ToLower(strings.TrimSpace(email))
	return b
}

// WithName sets the display name.
func (b *UserBuilder) WithName(name string) *UserBuilder {
	b.user.Name = name
	return b
}

// WithRole sets the role.
func (b *UserBuilder) WithRole(role domainauth.Role) *UserBuilder {
	b.user.Role = role
	return b
}

// WithPasswordHash sets the stored hash.
func (b *UserBuilder) WithPasswordHash(hash string) *UserBuilder {
	b.user.PasswordHash = hash
	return b
}

// WithCompany sets the company name.
func (b *UserBuilder) WithCompany(company string) *UserBuilder {
	b.user.CompanyName = &company
	return b
}

// CreatedAt sets both timestamps.
func (b *UserBuilder) CreatedAt(t time.Time) *UserBuilder {
	b.user.CreatedAt = t
	b.user.UpdatedAt = t
	return b
}

// Build returns the built user.
func (b *UserBuilder) Build() model.User {
	return b.user
}
