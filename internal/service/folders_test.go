package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	mocks "github.com/BeauMercier/drasticClientPortal/internal/mocks"
	authmocks "github.com/BeauMercier/drasticClientPortal/internal/mocks/auth"
)

func TestFolderResolver_Strategies(t *testing.T) {
	tests := []struct {
		name         string
		email        string
		folders      []model.Folder
		wantID       string
		wantStrategy string
		wantSearches []string
	}{
		{
			name:         "exact email match skips fallbacks",
			email:        "client@example.com",
			folders:      []model.Folder{{ID: "f-exact", Name: "client@example.com – Assets"}, {ID: "f-domain", Name: "example.com shared"}},
			wantID:       "f-exact",
			wantStrategy: StrategyExact,
			wantSearches: []string{"client@example.com"},
		},
		{
			name:         "domain match",
			email:        "jane@acme.com",
			folders:      []model.Folder{{ID: "f-acme", Name: "Acme Corp (acme.com)"}},
			wantID:       "f-acme",
			wantStrategy: StrategyDomain,
			wantSearches: []string{"jane@acme.com", "acme.com"},
		},
		{
			name:         "local part match",
			email:        "bob@bigcorp.io",
			folders:      []model.Folder{{ID: "f-bob", Name: "Bob's Bakery"}, {ID: "f-other", Name: "Unrelated"}},
			wantID:       "f-bob",
			wantStrategy: StrategyLocalPart,
			wantSearches: []string{"bob@bigcorp.io", "bigcorp.io", "bob"},
		},
		{
			name:         "first match of a strategy wins",
			email:        "team@studio.dev",
			folders:      []model.Folder{{ID: "f-1", Name: "studio.dev - old"}, {ID: "f-2", Name: "studio.dev - new"}},
			wantID:       "f-1",
			wantStrategy: StrategyDomain,
			wantSearches: []string{"team@studio.dev", "studio.dev"},
		},
		{
			name:         "email is normalized before searching",
			email:        "  Client@Example.COM ",
			folders:      []model.Folder{{ID: "f-exact", Name: "client@example.com"}},
			wantID:       "f-exact",
			wantStrategy: StrategyExact,
			wantSearches: []string{"client@example.com"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := &authmocks.FakeStorage{Folders: tt.folders}
			r := NewFolderResolver(FolderResolverOptions{Storage: storage})

			res, err := r.Resolve(context.Background(), tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.Folder.ID)
			assert.Equal(t, tt.wantStrategy, res.Strategy)
			assert.Equal(t, tt.wantSearches, storage.Searches)
		})
	}
}

func TestFolderResolver_NoMatch(t *testing.T) {
	storage := &authmocks.FakeStorage{Folders: []model.Folder{{ID: "x", Name: "Somebody else"}}}
	r := NewFolderResolver(FolderResolverOptions{Storage: storage})

	res, err := r.Resolve(context.Background(), "client@example.com")
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrFolderNotFound)
	assert.Equal(t, []string{"client@example.com", "example.com", "client"}, storage.Searches)
}

func TestFolderResolver_MalformedEmailOnlyTriesExact(t *testing.T) {
	for _, email := range []string{"no-at-sign", "a@b@c.com", "@example.com", "client@"} {
		t.Run(email, func(t *testing.T) {
			storage := &authmocks.FakeStorage{}
			r := NewFolderResolver(FolderResolverOptions{Storage: storage})

			_, err := r.Resolve(context.Background(), email)
			require.ErrorIs(t, err, ErrFolderNotFound)
			assert.Equal(t, []string{email}, storage.Searches)
		})
	}
}

func TestFolderResolver_EmptyEmail(t *testing.T) {
	storage := &authmocks.FakeStorage{}
	r := NewFolderResolver(FolderResolverOptions{Storage: storage})

	_, err := r.Resolve(context.Background(), "   ")
	require.ErrorIs(t, err, ErrFolderNotFound)
	assert.Empty(t, storage.Searches)
}

func TestFolderResolver_StrategyFailureFallsThrough(t *testing.T) {
	storage := &authmocks.FakeStorage{
		Folders:    []model.Folder{{ID: "f-exact", Name: "client@example.com"}, {ID: "f-domain", Name: "example.com"}},
		SearchErrs: map[string]error{"client@example.com": errors.New("503 backend error")},
	}
	r := NewFolderResolver(FolderResolverOptions{Storage: storage})

	res, err := r.Resolve(context.Background(), "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, "f-exact", res.Folder.ID, "domain search also matches the exact-named folder first")
	assert.Equal(t, StrategyDomain, res.Strategy)
}

func TestFolderResolver_AllStrategiesFail(t *testing.T) {
	boom := errors.New("quota exceeded")
	storage := &authmocks.FakeStorage{SearchErrs: map[string]error{
		"client@example.com": boom,
		"example.com":        boom,
		"client":             boom,
	}}
	r := NewFolderResolver(FolderResolverOptions{Storage: storage})

	_, err := r.Resolve(context.Background(), "client@example.com")
	require.ErrorIs(t, err, ErrFolderNotFound)
	assert.NotErrorIs(t, err, boom)
}

func TestFolderResolver_RunsStrategiesInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorageClient(ctrl)

	gomock.InOrder(
		storage.EXPECT().SearchFolders(gomock.Any(), "jane@acme.com").Return(nil, nil),
		storage.EXPECT().SearchFolders(gomock.Any(), "acme.com").Return([]model.Folder{}, nil),
		storage.EXPECT().SearchFolders(gomock.Any(), "jane").Return([]model.Folder{{ID: "f-jane", Name: "Jane"}}, nil),
	)

	r := NewFolderResolver(FolderResolverOptions{Storage: storage})
	res, err := r.Resolve(context.Background(), "jane@acme.com")
	require.NoError(t, err)
	assert.Equal(t, "f-jane", res.Folder.ID)
	assert.Equal(t, StrategyLocalPart, res.Strategy)
}

func TestFolderResolver_CanceledContext(t *testing.T) {
	ctrl := gomock.NewController(t)
	storage := mocks.NewMockStorageClient(ctrl)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewFolderResolver(FolderResolverOptions{Storage: storage})
	_, err := r.Resolve(ctx, "client@example.com")
	require.ErrorIs(t, err, context.Canceled)
}

func TestSplitEmail(t *testing.T) {
	local, domain := splitEmail("jane@acme.com")
	assert.Equal(t, "jane", local)
	assert.Equal(t, "acme.com", domain)

	local, domain = splitEmail("a@b@c")
	assert.Empty(t, local)
	assert.Empty(t, domain)
}
