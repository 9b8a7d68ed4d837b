package ports

import (
	"context"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
)

// ListOptions controls a folder listing.
type ListOptions struct {
	PageSize int
	OrderBy  string
}

// StorageClient is the remote file store holding client folders.
type StorageClient interface {
	// SearchFolders returns non-trashed folders whose name contains term, in backend order.
	SearchFolders(ctx context.Context, term string) ([]model.Folder, error)
	// ListChildren returns non-trashed children of folderID.
	ListChildren(ctx context.Context, folderID string, opts ListOptions) ([]model.RemoteFile, error)
	// Upload creates a new file parented under in.FolderID.
	Upload(ctx context.Context, in model.UploadInput) (model.RemoteFile, error)
}
