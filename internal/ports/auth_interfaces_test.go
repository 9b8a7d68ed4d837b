package ports_test

import (
	"testing"

	mocks "github.com/BeauMercier/drasticClientPortal/internal/mocks/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

// This test only verifies that our mocks conform to the ports at compile time.
func TestMocksImplementPorts(t *testing.T) {
	t.Helper()

	var _ ports.UserRepository = (*mocks.MemoryUserRepository)(nil)
	var _ ports.PasswordHasher = (*mocks.PlainHasher)(nil)
	var _ ports.SessionStore = (*mocks.MemorySessionStore)(nil)
	var _ ports.TokenCodec = (*mocks.StaticTokenCodec)(nil)
	var _ ports.StorageClient = (*mocks.FakeStorage)(nil)
}
