package auth

// Package auth contains simple hand-written test doubles for portal ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.UserRepository = (*MemoryUserRepository)(nil)
	_ ports.PasswordHasher = (*PlainHasher)(nil)
	_ ports.SessionStore   = (*MemorySessionStore)(nil)
	_ ports.TokenCodec     = (*StaticTokenCodec)(nil)
	_ ports.StorageClient  = (*FakeStorage)(nil)
)

// MemoryUserRepository keeps users in a map keyed by normalized email.
type MemoryUserRepository struct {
	mu    sync.Mutex
	users map[string]model.User

	// GetErr, when set, is returned from GetByEmail.
	GetErr error
}

// NewMemoryUserRepository creates a repository seeded with users.
func NewMemoryUserRepository(users ...model.User) *MemoryUserRepository {
	r := &MemoryUserRepository{users: make(map[string]model.User)}
	for _, u := range users {
		r.users[model.NormalizeEmail(u.Email)] = u
	}
	return r
}

func (r *MemoryUserRepository) Create(_ context.Context, req model.CreateUserRequest) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := model.NormalizeEmail(req.Email)
	if _, ok := r.users[key]; ok {
		return nil, &apperrors.AppError{Code: apperrors.ErrCodeConflict, Message: "This value already exists.", Field: "email"}
	}
	now := time.Now().UTC()
	u := model.User{
		ID:           uuid.NewString(),
		Email:        key,
		Name:         req.Name,
		CompanyName:  req.CompanyName,
		Role:         req.Role,
		PasswordHash: req.PasswordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	r.users[key] = u
	return &u, nil
}

func (r *MemoryUserRepository) GetByEmail(_ context.Context, email string) (*model.User, error) {
	if r.GetErr != nil {
		return nil, r.GetErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[model.NormalizeEmail(email)]
	if !ok {
		return nil, apperrors.NotFound("user not found")
	}
	return &u, nil
}

// PlainHasher stores passwords with a visible prefix. Never use outside tests.
type PlainHasher struct {
	// Compares counts Compare calls, including dummy comparisons.
	Compares int
	// HashErr, when set, is returned by Hash.
	HashErr error
}

func (h *PlainHasher) Hash(password string) (string, error) {
	if h.HashErr != nil {
		return "", h.HashErr
	}
	return "plain:" + password, nil
}

func (h *PlainHasher) Compare(hash, password string) error {
	h.Compares++
	if hash != "plain:"+password {
		return errors.New("password mismatch")
	}
	return nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok || id == "" {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StaticTokenCodec issues opaque "token-<sid>" strings and remembers their claims.
type StaticTokenCodec struct {
	mu     sync.Mutex
	claims map[string]ports.TokenClaims

	// Now overrides the clock used for expiry checks.
	Now func() time.Time
}

// ErrInvalidToken is returned for unknown or expired tokens.
var ErrInvalidToken = errors.New("invalid token")

// NewStaticTokenCodec creates an empty codec.
func NewStaticTokenCodec() *StaticTokenCodec {
	return &StaticTokenCodec{claims: make(map[string]ports.TokenClaims)}
}

func (c *StaticTokenCodec) Issue(sess domainauth.Session) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tok := "token-" + sess.ID + "-" + sess.ExpiresAt.Format(time.RFC3339Nano)
	c.claims[tok] = ports.TokenClaims{
		SessionID: sess.ID,
		UserID:    sess.UserID,
		Email:     sess.Email,
		Name:      sess.Name,
		Role:      sess.Role,
		IssuedAt:  sess.IssuedAt,
		ExpiresAt: sess.ExpiresAt,
	}
	return tok, nil
}

func (c *StaticTokenCodec) Parse(token string) (ports.TokenClaims, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cl, ok := c.claims[token]
	if !ok {
		return ports.TokenClaims{}, ErrInvalidToken
	}
	now := time.Now()
	if c.Now != nil {
		now = c.Now()
	}
	if !now.Before(cl.ExpiresAt) {
		return ports.TokenClaims{}, ErrInvalidToken
	}
	return cl, nil
}

// FakeStorage is an in-memory StorageClient. Folder search is a
// case-insensitive substring match, like Drive's name contains.
type FakeStorage struct {
	mu sync.Mutex

	Folders  []model.Folder
	Children map[string][]model.RemoteFile

	// SearchErrs fails SearchFolders for specific terms.
	SearchErrs map[string]error
	ListErr    error
	UploadErr  error

	// Searches records every term passed to SearchFolders, in order.
	Searches []string
	Uploads  []model.UploadInput
}

func (f *FakeStorage) SearchFolders(_ context.Context, term string) ([]model.Folder, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Searches = append(f.Searches, term)
	if err := f.SearchErrs[term]; err != nil {
		return nil, err
	}
	var out []model.Folder
	for _, folder := range f.Folders {
		if strings.Contains(strings.ToLower(folder.Name), strings.ToLower(term)) {
			out = append(out, folder)
		}
	}
	return out, nil
}

func (f *FakeStorage) ListChildren(_ context.Context, folderID string, opts ports.ListOptions) ([]model.RemoteFile, error) {
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	files := f.Children[folderID]
	if opts.PageSize > 0 && len(files) > opts.PageSize {
		files = files[:opts.PageSize]
	}
	return append([]model.RemoteFile(nil), files...), nil
}

func (f *FakeStorage) Upload(_ context.Context, in model.UploadInput) (model.RemoteFile, error) {
	if f.UploadErr != nil {
		return model.RemoteFile{}, f.UploadErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Uploads = append(f.Uploads, in)
	id := "uploaded-" + uuid.NewString()
	return model.RemoteFile{
		ID:          id,
		Name:        in.Name,
		MimeType:    in.MimeType,
		WebViewLink: "https://drive.google.com/file/d/" + id + "/view",
	}, nil
}
