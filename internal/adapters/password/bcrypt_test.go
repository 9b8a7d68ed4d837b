package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("password")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$"))

	assert.NoError(t, h.Compare(hash, "password"))
	assert.ErrorIs(t, h.Compare(hash, "Password"), ErrMismatch)
}

func TestBcrypt_CompareMalformedHash(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	err := h.Compare("not-a-hash", "password")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMismatch)
}

func TestBcrypt_RejectsLongPassword(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("a", 73))
	assert.ErrorIs(t, err, ports.ErrPasswordTooLong)

	// 40 runes encode to 80 bytes.
	_, err = h.Hash(strings.Repeat("é", 40))
	assert.ErrorIs(t, err, ports.ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("a", 72))
	assert.NoError(t, err)
}

func TestNewBcrypt_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, NewBcrypt(99).cost)
	assert.Equal(t, 12, NewBcrypt(12).cost)
}
