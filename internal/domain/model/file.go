//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"io"
	"time"
)

// FolderMimeType marks folder entries in Drive.
const FolderMimeType = "application/vnd.google-apps.folder"

// Folder is a remote storage folder believed to belong to a client.
type Folder struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RemoteFile is file metadata as reported by the storage backend.
// Size and ModifiedTime are nil when the backend omits them (folders, native docs).
type RemoteFile struct {
	ID            string
	Name          string
	MimeType      string
	Size          *int64
	ModifiedTime  *time.Time
	WebViewLink   string
	IconLink      string
	ThumbnailLink string
}

// IsFolder reports whether the entry is a folder.
func (f RemoteFile) IsFolder() bool { return f.MimeType == FolderMimeType }

// FileEntry is a display-ready listing row.
type FileEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	MimeType      string `json:"mimeType"`
	Size          string `json:"size"`
	ModifiedTime  string `json:"modifiedTime"`
	WebViewLink   string `json:"webViewLink,omitempty"`
	IconLink      string `json:"iconLink,omitempty"`
	ThumbnailLink string `json:"thumbnailLink,omitempty"`
	IsFolder      bool   `json:"isFolder"`
}

// UploadedFile is the summary returned after an upload.
type UploadedFile struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Link string `json:"link"`
}

// UploadInput describes a file to create under FolderID.
type UploadInput struct {
	FolderID string    `validate:"required"`
	Name     string    `validate:"required,max=255"`
	MimeType string    `validate:"omitempty,max=255"`
	Body     io.Reader `validate:"required"`
}
