package httpx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
)

func TestGetUserSessionFromContext(t *testing.T) {
	// No session
	if s, ok := GetUserSessionFromContext(context.Background()); assert.False(t, ok) {
		assert.Nil(t, s)
	}

	// With session
	sess := &domainauth.Session{ID: "abc", Role: domainauth.RoleClient}
	ctx := SetSessionInContext(context.Background(), sess)
	s, ok := GetUserSessionFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, sess, s)
}

func TestSetSessionInContext_Nil(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, ctx, SetSessionInContext(ctx, nil))
	assert.False(t, IsAuthenticated(ctx))
}

func TestIsAuthenticated(t *testing.T) {
	admin := &domainauth.Session{ID: "a", Role: domainauth.RoleAdmin}
	assert.True(t, IsAuthenticated(SetSessionInContext(context.Background(), admin)))
}
