package data

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

const userColumns = `id, email, name, company_name, role, password_hash, created_at, updated_at`

const (
	userInsertQuery = `
		INSERT INTO users (email, name, company_name, role, password_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		RETURNING ` + userColumns

	userGetByEmailQuery = `SELECT ` + userColumns + ` FROM users WHERE email = $1`
)

var _ ports.UserRepository = (*UserRepo)(nil)

// UserRepo provides database operations for portal accounts.
type UserRepo struct {
	DB           DBTX
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db DBTX) *UserRepo {
	return &UserRepo{DB: db, timeProvider: RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db DBTX, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new user. A duplicate email maps to a Conflict error on field "email".
func (r *UserRepo) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	email := model.NormalizeEmail(req.Email)
	if email == "" {
		return nil, ErrUserEmailRequired
	}
	if req.PasswordHash == "" {
		return nil, ErrUserHashRequired
	}

	rows, err := r.DB.Query(ctx, userInsertQuery,
		email,
		strings.TrimSpace(req.Name),
		req.CompanyName,
		req.Role,
		req.PasswordHash,
		r.timeProvider.Now(),
	)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", apperrors.MapDBError(err))
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("create user: %w", apperrors.MapDBError(err))
	}
	return &u, nil
}

// GetByEmail retrieves a user by email. Stored emails are lower-case.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	rows, err := r.DB.Query(ctx, userGetByEmailQuery, model.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", apperrors.MapDBError(err))
	}
	u, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", apperrors.MapDBError(err))
	}
	return &u, nil
}
