package data

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
)

var userRowColumns = []string{"id", "email", "name", "company_name", "role", "password_hash", "created_at", "updated_at"}

func TestUserRepo_Create(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	now := time.Date(2025, 2, 1, 9, 30, 0, 0, time.UTC)
	repo := NewUserRepoWithTimeProvider(mock, NewFixedTimeProvider(now))
	company := "Acme Corp"

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("jane@acme.com", "Jane Doe", &company, domainauth.RoleClient, "hash", now).
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-1", "jane@acme.com", "Jane Doe", &company, domainauth.RoleClient, "hash", now, now))

	u, err := repo.Create(context.Background(), model.CreateUserRequest{
		Email:        "  Jane@Acme.com ",
		Name:         " Jane Doe ",
		CompanyName:  &company,
		Role:         domainauth.RoleClient,
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.Equal(t, "u-1", u.ID)
	assert.Equal(t, "jane@acme.com", u.Email)
	assert.Equal(t, domainauth.RoleClient, u.Role)
	require.NotNil(t, u.CompanyName)
	assert.Equal(t, "Acme Corp", *u.CompanyName)
	assert.Equal(t, now, u.CreatedAt)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_DuplicateEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("client@example.com", "Client", pgxmock.AnyArg(), domainauth.RoleClient, "hash", pgxmock.AnyArg()).
		WillReturnError(&pgconn.PgError{
			Code:           pgerrcode.UniqueViolation,
			ConstraintName: "users_email_key",
		})

	_, err = repo.Create(context.Background(), model.CreateUserRequest{
		Email:        "client@example.com",
		Name:         "Client",
		Role:         domainauth.RoleClient,
		PasswordHash: "hash",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))
	assert.Equal(t, "email", apperrors.GetField(err))

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_Create_RequiresFields(t *testing.T) {
	repo := NewUserRepo(nil)

	_, err := repo.Create(context.Background(), model.CreateUserRequest{PasswordHash: "h"})
	assert.ErrorIs(t, err, ErrUserEmailRequired)

	_, err = repo.Create(context.Background(), model.CreateUserRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, ErrUserHashRequired)
}

func TestUserRepo_GetByEmail(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)
	created := time.Date(2024, 12, 24, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT id, email").
		WithArgs("admin@drastic.digital").
		WillReturnRows(pgxmock.NewRows(userRowColumns).
			AddRow("u-admin", "admin@drastic.digital", "Admin User", nil, domainauth.RoleAdmin, "hash", created, created))

	u, err := repo.GetByEmail(context.Background(), "ADMIN@drastic.digital")
	require.NoError(t, err)
	assert.Equal(t, "u-admin", u.ID)
	assert.Equal(t, domainauth.RoleAdmin, u.Role)
	assert.Nil(t, u.CompanyName)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_GetByEmail_NotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewUserRepo(mock)

	mock.ExpectQuery("SELECT id, email").
		WithArgs("nobody@example.com").
		WillReturnRows(pgxmock.NewRows(userRowColumns))

	_, err = repo.GetByEmail(context.Background(), "nobody@example.com")
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	require.NoError(t, mock.ExpectationsWereMet())
}
