package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	"github.com/BeauMercier/drasticClientPortal/internal/observability/metrics"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
	"github.com/BeauMercier/drasticClientPortal/internal/util"
	"github.com/BeauMercier/drasticClientPortal/internal/validation"
)

// ErrFolderRequired is returned when neither a folder id nor a client email is available.
var ErrFolderRequired = errors.New("folder id or client email is required")

const (
	// ListPageSize caps a folder listing.
	ListPageSize = 100
	// ListOrder lists the most recently modified entries first.
	ListOrder = "modifiedTime desc"
)

// FileServiceOptions groups dependencies for FileService.
type FileServiceOptions struct {
	Storage ports.StorageClient // Required
	Folders *FolderResolver     // Required
	Logger  *slog.Logger        // Optional
}

// FileService lists and uploads files in a client's folder.
type FileService struct {
	storage  ports.StorageClient
	folders  *FolderResolver
	validate *validation.Validator
	logger   *slog.Logger
}

// NewFileService constructs a FileService.
func NewFileService(opts FileServiceOptions) *FileService {
	if opts.Storage == nil {
		panic("StorageClient is required")
	}
	if opts.Folders == nil {
		panic("FolderResolver is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &FileService{
		storage:  opts.Storage,
		folders:  opts.Folders,
		validate: validation.New(),
		logger:   logger.With("component", "files"),
	}
}

// TargetFolder picks the folder to operate on. An explicit folderID wins;
// otherwise the folder is resolved from email.
func (s *FileService) TargetFolder(ctx context.Context, folderID, email string) (string, error) {
	if id := strings.TrimSpace(folderID); id != "" {
		return id, nil
	}
	if strings.TrimSpace(email) == "" {
		return "", ErrFolderRequired
	}
	res, err := s.folders.Resolve(ctx, email)
	if err != nil {
		return "", err
	}
	return res.Folder.ID, nil
}

// List returns display-ready entries of folderID, newest first.
func (s *FileService) List(ctx context.Context, folderID string) ([]model.FileEntry, error) {
	if strings.TrimSpace(folderID) == "" {
		return nil, ErrFolderRequired
	}

	start := time.Now()
	remote, err := s.storage.ListChildren(ctx, folderID, ports.ListOptions{
		PageSize: ListPageSize,
		OrderBy:  ListOrder,
	})
	metrics.RecordStorageCall("list_children", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("list folder %s: %w", folderID, err)
	}

	entries := make([]model.FileEntry, 0, len(remote))
	for _, f := range remote {
		entries = append(entries, ToFileEntry(f))
	}
	return entries, nil
}

// Upload stores in under in.FolderID and returns the created file summary.
func (s *FileService) Upload(ctx context.Context, in model.UploadInput) (*model.UploadedFile, error) {
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	start := time.Now()
	created, err := s.storage.Upload(ctx, in)
	metrics.RecordStorageCall("upload", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("upload %q: %w", in.Name, err)
	}

	s.logger.InfoContext(ctx, "file uploaded",
		"folder_id", in.FolderID,
		"file_id", created.ID,
		"name", created.Name,
	)
	return &model.UploadedFile{ID: created.ID, Name: created.Name, Link: created.WebViewLink}, nil
}

// ToFileEntry formats remote metadata for display.
func ToFileEntry(f model.RemoteFile) model.FileEntry {
	return model.FileEntry{
		ID:            f.ID,
		Name:          f.Name,
		MimeType:      f.MimeType,
		Size:          util.FormatFileSize(f.Size),
		ModifiedTime:  util.FormatDate(f.ModifiedTime),
		WebViewLink:   f.WebViewLink,
		IconLink:      f.IconLink,
		ThumbnailLink: f.ThumbnailLink,
		IsFolder:      f.IsFolder(),
	}
}
