package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	r, err := ParseRole(" Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	r, err = ParseRole("client")
	require.NoError(t, err)
	assert.Equal(t, RoleClient, r)

	_, err = ParseRole("guest")
	assert.Error(t, err)
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s := Session{ExpiresAt: now}

	assert.True(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Second)))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestSession_Identity(t *testing.T) {
	s := Session{ID: "sid", UserID: "u1", Email: "client@example.com", Name: "Client User", Role: RoleClient}

	assert.Equal(t, Identity{UserID: "u1", Email: "client@example.com", Name: "Client User", Role: RoleClient}, s.Identity())
	assert.False(t, s.IsAdmin())
}
