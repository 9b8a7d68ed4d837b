// Package mocks provides gomock implementations of portal ports.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	storage := mocks.NewMockStorageClient(ctrl)
//	storage.EXPECT().SearchFolders(gomock.Any(), "client@example.com").Return(folders, nil)
package mocks

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=storage_client_mock.go github.com/BeauMercier/drasticClientPortal/internal/ports StorageClient

//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=user_repository_mock.go github.com/BeauMercier/drasticClientPortal/internal/ports UserRepository
