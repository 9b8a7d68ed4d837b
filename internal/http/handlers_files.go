package httpx

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
)

// FileServiceInterface defines the file operations used by the handlers.
type FileServiceInterface interface {
	TargetFolder(ctx context.Context, folderID, email string) (string, error)
	List(ctx context.Context, folderID string) ([]model.FileEntry, error)
	Upload(ctx context.Context, in model.UploadInput) (*model.UploadedFile, error)
}

// FileHandlers serves the file browser API.
type FileHandlers struct {
	Svc            FileServiceInterface
	UploadMaxBytes int64
	Logger         *slog.Logger
}

func (h *FileHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

type fileListResponse struct {
	Success   bool              `json:"success"`
	FileCount *int              `json:"fileCount,omitempty"`
	Files     []model.FileEntry `json:"files"`
	Error     *string           `json:"error"`
}

func listFailure(msg string) fileListResponse {
	return fileListResponse{Success: false, Files: []model.FileEntry{}, Error: &msg}
}

type uploadResponse struct {
	Success bool                `json:"success"`
	File    *model.UploadedFile `json:"file,omitempty"`
	Message string              `json:"message,omitempty"`
	Error   string              `json:"error,omitempty"`
}

// List returns the entries of the requested or resolved client folder.
// GET /api/files?folderId=<id>.
func (h *FileHandlers) List(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgUnauthorized})
		return
	}

	q := r.URL.Query()
	email := effectiveClientEmail(sess, q.Get("clientEmail"))
	folderID, err := h.Svc.TargetFolder(r.Context(), q.Get("folderId"), email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNotFound):
			WriteJSON(w, http.StatusNotFound, listFailure(msgNoFolder))
		case errors.Is(err, service.ErrFolderRequired):
			WriteJSON(w, http.StatusBadRequest, listFailure(msgNoFolderForListing))
		default:
			h.logger().ErrorContext(r.Context(), "resolve folder failed", "error", err)
			WriteJSON(w, http.StatusInternalServerError, listFailure("Failed to fetch files: "+err.Error()))
		}
		return
	}

	files, err := h.Svc.List(r.Context(), folderID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "error fetching files", "folder_id", folderID, "error", err)
		WriteJSON(w, http.StatusInternalServerError, listFailure("Failed to fetch files: "+err.Error()))
		return
	}

	count := len(files)
	WriteJSON(w, http.StatusOK, fileListResponse{Success: true, FileCount: &count, Files: files})
}

// Upload stores a multipart file in the requested or resolved client folder.
// POST /api/files/upload.
func (h *FileHandlers) Upload(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetUserSessionFromContext(r.Context())
	if !ok {
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, Message: msgUnauthorized})
		return
	}

	if h.UploadMaxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.UploadMaxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSON(w, http.StatusRequestEntityTooLarge, uploadResponse{Message: msgFileTooLarge})
			return
		}
		WriteJSON(w, http.StatusBadRequest, uploadResponse{Message: msgNoFile})
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			h.logger().WarnContext(r.Context(), "removing multipart temp files failed", "error", err)
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeUpload(w, r, http.StatusBadRequest, uploadResponse{Message: msgNoFile})
		return
	}
	defer file.Close()

	email := effectiveClientEmail(sess, r.FormValue("clientEmail"))
	folderID, err := h.Svc.TargetFolder(r.Context(), r.FormValue("folderId"), email)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFolderNotFound):
			h.writeUpload(w, r, http.StatusNotFound, uploadResponse{Message: msgNoFolder})
		case errors.Is(err, service.ErrFolderRequired):
			h.writeUpload(w, r, http.StatusBadRequest, uploadResponse{Message: msgNoFolderForUpload})
		default:
			h.logger().ErrorContext(r.Context(), "resolve folder failed", "error", err)
			h.writeUpload(w, r, http.StatusInternalServerError, uploadResponse{Message: msgUploadFailed, Error: err.Error()})
		}
		return
	}

	uploaded, err := h.Svc.Upload(r.Context(), model.UploadInput{
		FolderID: folderID,
		Name:     filepath.Base(header.Filename),
		MimeType: uploadMimeType(header.Header.Get("Content-Type"), header.Filename),
		Body:     file,
	})
	if err != nil {
		if apperrors.IsValidation(err) {
			h.writeUpload(w, r, http.StatusBadRequest, uploadResponse{Message: appErrorMessage(err)})
			return
		}
		h.logger().ErrorContext(r.Context(), "error uploading file", "folder_id", folderID, "error", err)
		h.writeUpload(w, r, http.StatusInternalServerError, uploadResponse{Message: msgUploadFailed, Error: err.Error()})
		return
	}

	h.writeUpload(w, r, http.StatusOK, uploadResponse{Success: true, File: uploaded})
}

// effectiveClientEmail lets admins act on another client's folder.
func effectiveClientEmail(sess *domainauth.Session, requested string) string {
	if requested = strings.TrimSpace(requested); requested != "" && sess.IsAdmin() {
		return requested
	}
	return sess.Email
}

func uploadMimeType(declared, filename string) string {
	if declared != "" && declared != "application/octet-stream" {
		return declared
	}
	if byExt := mime.TypeByExtension(filepath.Ext(filename)); byExt != "" {
		return byExt
	}
	return declared
}

// writeUpload answers with JSON, or for browser form posts carrying a local
// "redirect" field, with a 303 back to that page.
func (h *FileHandlers) writeUpload(w http.ResponseWriter, r *http.Request, status int, resp uploadResponse) {
	redirect := r.FormValue("redirect")
	if redirect == "" {
		WriteJSON(w, status, resp)
		return
	}
	q := url.Values{}
	if resp.Success && resp.File != nil {
		q.Set("uploaded", resp.File.Name)
	} else {
		q.Set("error", resp.Message)
	}
	target := safeRedirectPath(redirect)
	sep := "?"
	if strings.Contains(target, "?") {
		sep = "&"
	}
	http.Redirect(w, r, target+sep+q.Encode(), http.StatusSeeOther)
}
