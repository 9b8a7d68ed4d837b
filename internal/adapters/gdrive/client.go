// Package gdrive provides the Google Drive v3 storage client used for client
// folders. Callers never see raw Drive types; results are normalized into
// model.Folder and model.RemoteFile.
package gdrive

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

var _ ports.StorageClient = (*Client)(nil)

const (
	folderSearchFields = "files(id, name)"
	listFields         = "files(id, name, mimeType, size, modifiedTime, webViewLink, iconLink, thumbnailLink)"
	uploadFields       = "id, name, mimeType, webViewLink"

	// googleAppsPrefix marks Drive-native types that report no byte size.
	googleAppsPrefix = "application/vnd.google-apps."
)

// ErrMissingCredentials is returned by New without a service account email or key.
var ErrMissingCredentials = errors.New("drive: service account email and private key are required")

// Config holds service account credentials and transport settings.
type Config struct {
	ClientEmail string
	PrivateKey  string
	Scopes      []string
	// Endpoint overrides the API base URL, e.g. "http://127.0.0.1:9000/drive/v3/".
	Endpoint string
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Client implements ports.StorageClient on Drive v3.
type Client struct {
	svc    *drive.Service
	logger *slog.Logger
}

// New builds a client authenticated as the configured service account.
func New(ctx context.Context, cfg Config) (*Client, error) {
	if cfg.ClientEmail == "" || cfg.PrivateKey == "" {
		return nil, ErrMissingCredentials
	}
	jwtCfg := &jwt.Config{
		Email:      cfg.ClientEmail,
		PrivateKey: []byte(cfg.PrivateKey),
		Scopes:     cfg.Scopes,
		TokenURL:   google.JWTTokenURL,
	}
	// Token refreshes outlive any single request, so they use a detached context.
	httpClient := jwtCfg.Client(context.WithoutCancel(ctx))
	httpClient.Timeout = cfg.Timeout
	return NewWithHTTPClient(ctx, httpClient, cfg.Endpoint, cfg.Logger)
}

// NewWithHTTPClient builds a client on a preauthorized HTTP client.
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint string, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create drive service: %w", err)
	}
	return &Client{svc: svc, logger: logger.With("component", "gdrive")}, nil
}

// SearchFolders returns non-trashed folders whose name contains term across all drives.
func (c *Client) SearchFolders(ctx context.Context, term string) ([]model.Folder, error) {
	res, err := c.svc.Files.List().
		Context(ctx).
		Q(folderSearchQuery(term)).
		Fields(googleapi.Field(folderSearchFields)).
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return nil, wrapAPIError("search folders", err)
	}

	out := make([]model.Folder, 0, len(res.Files))
	for _, f := range res.Files {
		out = append(out, model.Folder{ID: f.Id, Name: f.Name})
	}
	return out, nil
}

// ListChildren returns non-trashed children of folderID.
func (c *Client) ListChildren(ctx context.Context, folderID string, opts ports.ListOptions) ([]model.RemoteFile, error) {
	call := c.svc.Files.List().
		Context(ctx).
		Q(childrenQuery(folderID)).
		Fields(googleapi.Field(listFields)).
		IncludeItemsFromAllDrives(true).
		SupportsAllDrives(true)
	if opts.PageSize > 0 {
		call = call.PageSize(int64(opts.PageSize))
	}
	if opts.OrderBy != "" {
		call = call.OrderBy(opts.OrderBy)
	}

	res, err := call.Do()
	if err != nil {
		return nil, wrapAPIError("list children", err)
	}

	out := make([]model.RemoteFile, 0, len(res.Files))
	for _, f := range res.Files {
		out = append(out, c.toRemoteFile(ctx, f))
	}
	return out, nil
}

// Upload creates a file under in.FolderID from in.Body.
func (c *Client) Upload(ctx context.Context, in model.UploadInput) (model.RemoteFile, error) {
	meta := &drive.File{
		Name:     in.Name,
		MimeType: in.MimeType,
		Parents:  []string{in.FolderID},
	}
	var mediaOpts []googleapi.MediaOption
	if in.MimeType != "" {
		mediaOpts = append(mediaOpts, googleapi.ContentType(in.MimeType))
	}

	f, err := c.svc.Files.Create(meta).
		Context(ctx).
		Media(in.Body, mediaOpts...).
		Fields(googleapi.Field(uploadFields)).
		SupportsAllDrives(true).
		Do()
	if err != nil {
		return model.RemoteFile{}, wrapAPIError("upload file", err)
	}
	return c.toRemoteFile(ctx, f), nil
}

func (c *Client) toRemoteFile(ctx context.Context, f *drive.File) model.RemoteFile {
	rf := model.RemoteFile{
		ID:            f.Id,
		Name:          f.Name,
		MimeType:      f.MimeType,
		WebViewLink:   f.WebViewLink,
		IconLink:      f.IconLink,
		ThumbnailLink: f.ThumbnailLink,
	}
	// Drive omits size for folders and native docs; the client decodes that as 0.
	if f.Size > 0 || !strings.HasPrefix(f.MimeType, googleAppsPrefix) {
		size := f.Size
		rf.Size = &size
	}
	if f.ModifiedTime != "" {
		t, err := time.Parse(time.RFC3339, f.ModifiedTime)
		if err != nil {
			c.logger.WarnContext(ctx, "unparseable modifiedTime", "file_id", f.Id, "value", f.ModifiedTime)
		} else {
			rf.ModifiedTime = &t
		}
	}
	return rf
}

// escapeQueryValue quotes s for use inside a single-quoted Drive query literal.
func escapeQueryValue(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

func folderSearchQuery(term string) string {
	return fmt.Sprintf("mimeType = '%s' and name contains '%s' and trashed = false",
		model.FolderMimeType, escapeQueryValue(term))
}

func childrenQuery(folderID string) string {
	return fmt.Sprintf("'%s' in parents and trashed = false", escapeQueryValue(folderID))
}
