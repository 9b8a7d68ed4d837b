package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	mocks "github.com/BeauMercier/drasticClientPortal/internal/mocks"
	authmocks "github.com/BeauMercier/drasticClientPortal/internal/mocks/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/testutil"
)

func newValidator(t *testing.T) (*CredentialValidator, *authmocks.PlainHasher) {
	t.Helper()
	users := authmocks.NewMemoryUserRepository(
		testutil.NewUser().Build(),
		testutil.NewUser().WithID("admin-1").WithEmail("admin@drastic.digital").
			WithName("Admin User").WithRole(domainauth.RoleAdmin).Build(),
	)
	hasher := &authmocks.PlainHasher{}
	return NewCredentialValidator(CredentialValidatorOptions{Users: users, Hasher: hasher}), hasher
}

func TestCredentialValidator_Success(t *testing.T) {
	v, _ := newValidator(t)

	identity, err := v.Validate(context.Background(), "  Admin@Drastic.Digital ", "password")
	require.NoError(t, err)
	assert.Equal(t, domainauth.Identity{
		UserID: "admin-1",
		Email:  "admin@drastic.digital",
		Name:   "Admin User",
		Role:   domainauth.RoleAdmin,
	}, *identity)
}

func TestCredentialValidator_FailuresAreIndistinguishable(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		compares int
	}{
		{name: "wrong password", email: "client@example.com", password: "wrong", compares: 1},
		{name: "unknown user", email: "nobody@example.com", password: "password", compares: 1},
		{name: "empty email", email: "", password: "password", compares: 0},
		{name: "empty password", email: "client@example.com", password: "", compares: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, hasher := newValidator(t)

			identity, err := v.Validate(context.Background(), tt.email, tt.password)
			assert.Nil(t, identity)
			require.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, "invalid email or password", err.Error())
			assert.Equal(t, tt.compares, hasher.Compares, "unknown users must still pay for one comparison")
		})
	}
}

func TestCredentialValidator_StoreFailureIsNotInvalidCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	users := mocks.NewMockUserRepository(ctrl)
	storeErr := errors.New("connection reset")
	users.EXPECT().GetByEmail(gomock.Any(), "client@example.com").Return(nil, storeErr)

	v := NewCredentialValidator(CredentialValidatorOptions{Users: users, Hasher: &authmocks.PlainHasher{}})

	_, err := v.Validate(context.Background(), "client@example.com", "password")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
	assert.ErrorIs(t, err, storeErr)
}

func TestNewCredentialValidator_PanicsWithoutDependencies(t *testing.T) {
	assert.Panics(t, func() { NewCredentialValidator(CredentialValidatorOptions{Hasher: &authmocks.PlainHasher{}}) })
	assert.Panics(t, func() { NewCredentialValidator(CredentialValidatorOptions{Users: authmocks.NewMemoryUserRepository()}) })
}
