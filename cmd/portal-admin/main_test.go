package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BeauMercier/drasticClientPortal/config"
	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	mocks "github.com/BeauMercier/drasticClientPortal/internal/mocks/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/migrate"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
	"github.com/BeauMercier/drasticClientPortal/internal/validation"
)

type fakeRevoker struct {
	userID string
	n      int64
	err    error
}

func (f *fakeRevoker) DeleteForUser(_ context.Context, userID string) (int64, error) {
	f.userID = userID
	return f.n, f.err
}

func TestPrintUsageListsCommandsSorted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	assert.Contains(t, out, "Usage: portal-admin <command> [flags]")
	for name := range commands() {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "create-user"), strings.Index(out, "revoke-sessions"))
}

func TestParseMigrateFlags(t *testing.T) {
	opts, err := parseMigrateFlags(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)
	assert.False(t, opts.Status)

	opts, err = parseMigrateFlags([]string{"--status", "--timeout", "10s"})
	require.NoError(t, err)
	assert.True(t, opts.Status)
	assert.Equal(t, 10*time.Second, opts.Timeout)

	_, err = parseMigrateFlags([]string{"--timeout", "0s"})
	require.Error(t, err)
}

func TestParseDBResetFlags(t *testing.T) {
	opts, err := parseDBResetFlags([]string{"--yes", "--seed"})
	require.NoError(t, err)
	assert.True(t, opts.Yes)
	assert.True(t, opts.Seed)
	assert.False(t, opts.AllowRemote)

	_, err = parseDBResetFlags([]string{"--timeout", "-1s"})
	require.Error(t, err)
}

func TestParseCreateUserFlags(t *testing.T) {
	opts, err := parseCreateUserFlags([]string{
		"--email", "New@Example.com", "--name", "New User", "--role", "ADMIN", "--password-stdin",
	}, strings.NewReader("s3cretpass\n"))
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, opts.Role)
	assert.Equal(t, "s3cretpass", opts.Password)

	tests := []struct {
		name  string
		args  []string
		stdin string
	}{
		{name: "unknown role", args: []string{"--email", "a@b.co", "--password", "longenough", "--role", "owner"}},
		{name: "missing email", args: []string{"--password", "longenough"}},
		{name: "missing password", args: []string{"--email", "a@b.co"}},
		{name: "both password sources", args: []string{"--email", "a@b.co", "--password", "x", "--password-stdin"}, stdin: "y\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseCreateUserFlags(tt.args, strings.NewReader(tt.stdin))
			require.Error(t, err)
		})
	}
}

func TestCreateUser(t *testing.T) {
	users := mocks.NewMemoryUserRepository()
	hasher := &mocks.PlainHasher{}

	u, err := createUser(t.Context(), users, hasher, createUserOptions{
		Email:    " Ops@Drastic.Digital ",
		Name:     "Ops",
		Company:  "Drastic Digital",
		Role:     domainauth.RoleAdmin,
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.Equal(t, "ops@drastic.digital", u.Email)
	assert.Equal(t, domainauth.RoleAdmin, u.Role)
	assert.Equal(t, "plain:correct-horse", u.PasswordHash)
	require.NotNil(t, u.CompanyName)

	_, err = createUser(t.Context(), users, hasher, createUserOptions{
		Email: "ops@drastic.digital", Name: "Ops", Role: domainauth.RoleAdmin, Password: "correct-horse",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create user")
}

func TestCreateUser_Validation(t *testing.T) {
	_, err := createUser(t.Context(), mocks.NewMemoryUserRepository(), &mocks.PlainHasher{}, createUserOptions{
		Email: "not-an-email", Name: "", Role: domainauth.RoleClient, Password: "short",
	})
	require.Error(t, err)

	fields := validation.Fields(err)
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "password")
}

func TestRevokeSessions(t *testing.T) {
	users := mocks.NewMemoryUserRepository(model.User{ID: "u-1", Email: "client@example.com"})

	revoker := &fakeRevoker{n: 3}
	n, err := revokeSessions(t.Context(), users, revoker, "Client@Example.com")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.Equal(t, "u-1", revoker.userID)

	_, err = revokeSessions(t.Context(), users, revoker, "ghost@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lookup user")

	_, err = revokeSessions(t.Context(), users, &fakeRevoker{err: errors.New("redis down")}, "client@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "revoke sessions")
}

func newFileServices(storage *mocks.FakeStorage) (*service.FolderResolver, *service.FileService) {
	folders := service.NewFolderResolver(service.FolderResolverOptions{Storage: storage})
	files := service.NewFileService(service.FileServiceOptions{Storage: storage, Folders: folders})
	return folders, files
}

func TestResolveFolder(t *testing.T) {
	folders, _ := newFileServices(&mocks.FakeStorage{
		Folders: []model.Folder{{ID: "f-acme", Name: "Acme Corp (acme.io)"}},
	})

	var buf bytes.Buffer
	require.NoError(t, resolveFolder(t.Context(), &buf, folders, "jane@acme.io"))
	assert.Equal(t, "jane@acme.io -> Acme Corp (acme.io) (f-acme) via domain match\n", buf.String())

	err := resolveFolder(t.Context(), &buf, folders, "nobody@nowhere.test")
	require.ErrorIs(t, err, service.ErrFolderNotFound)
}

func TestListFiles(t *testing.T) {
	size := int64(2048)
	_, files := newFileServices(&mocks.FakeStorage{
		Folders: []model.Folder{{ID: "f-client", Name: "client@example.com"}},
		Children: map[string][]model.RemoteFile{
			"f-client": {{ID: "file-1", Name: "proposal.pdf", MimeType: "application/pdf", Size: &size}},
		},
	})

	var buf bytes.Buffer
	require.NoError(t, listFiles(t.Context(), &buf, files, listFilesOptions{Email: "client@example.com"}))
	out := buf.String()
	assert.Contains(t, out, "Folder f-client: 1 item(s)")
	assert.Contains(t, out, "proposal.pdf")
	assert.Contains(t, out, "2.00 KB")

	buf.Reset()
	require.NoError(t, listFiles(t.Context(), &buf, files, listFilesOptions{FolderID: "f-client", JSON: true}))
	var entries []model.FileEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "file-1", entries[0].ID)

	buf.Reset()
	require.NoError(t, listFiles(t.Context(), &buf, files, listFilesOptions{FolderID: "empty"}))
	assert.Equal(t, "Folder empty: 0 item(s)\n", buf.String())
}

func TestParseListFilesFlags(t *testing.T) {
	_, err := parseListFilesFlags(nil)
	require.Error(t, err)

	opts, err := parseListFilesFlags([]string{"--folder-id", "abc", "--json"})
	require.NoError(t, err)
	assert.Equal(t, "abc", opts.FolderID)
	assert.True(t, opts.JSON)
}

func TestPrintMigrationStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMigrationStatus(&buf, []migrate.Status{
		{Version: "001_users.sql", Applied: true},
		{Version: "002_next.sql"},
	}))
	out := buf.String()
	assert.Contains(t, out, "VERSION")
	assert.Regexp(t, `001_users\.sql\s+applied`, out)
	assert.Regexp(t, `002_next\.sql\s+pending`, out)
}

func TestResetDatabase(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mock.Close()

	for _, stmt := range resetStatements("portal") {
		mock.ExpectExec(stmt).WillReturnResult(pgxmock.NewResult("EXEC", 0))
	}

	cmdCtx := &commandContext{Config: config.AppConfig{Postgres: config.DBConfig{User: "portal"}}}
	require.NoError(t, cmdCtx.resetDatabase(t.Context(), mock))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestResetStatements(t *testing.T) {
	assert.Len(t, resetStatements(""), 3)
	assert.Len(t, resetStatements("public"), 3)
	stmts := resetStatements(`we"ird`)
	assert.Equal(t, `GRANT ALL ON SCHEMA public TO "we""ird"`, stmts[3])
}

func TestIsLikelyRemoteHost(t *testing.T) {
	tests := map[string]bool{
		"":              false,
		"localhost":     false,
		"127.0.0.1":     false,
		"::1":           false,
		"db.local":      false,
		"127.0.0.2":     false,
		"10.0.0.5":      true,
		"db.example.io": true,
	}
	for host, want := range tests {
		assert.Equal(t, want, isLikelyRemoteHost(host), host)
	}
}

func TestConfirmAction(t *testing.T) {
	var out bytes.Buffer
	opts := dbResetConfirmOptions{target: "database \"portal\""}

	require.NoError(t, confirmAction(opts, "reset database schema", strings.NewReader("yes\n"), &out))
	assert.Contains(t, out.String(), "About to reset database schema for database \"portal\".")

	require.Error(t, confirmAction(opts, "reset", strings.NewReader("n\n"), &out))
	require.NoError(t, confirmAction(dbResetConfirmOptions{yes: true}, "reset", strings.NewReader(""), &out))

	remote := dbResetConfirmOptions{yes: true, remoteHost: "db.example.io"}
	assert.False(t, remote.IsYes())
	assert.Contains(t, remote.GetWarning(), "appears to be remote")
}

func TestRequireRemoteHostConfirmation(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, requireRemoteHostConfirmation("seed", "db.example.io", strings.NewReader("db.example.io\n"), &out))
	require.Error(t, requireRemoteHostConfirmation("seed", "db.example.io", strings.NewReader("nope\n"), &out))
	require.Error(t, requireRemoteHostConfirmation("seed", "db.example.io", strings.NewReader(""), &out))
}

func TestHasRedisConfig(t *testing.T) {
	assert.False(t, hasRedisConfig(nil))
	assert.False(t, hasRedisConfig(&config.RedisConfig{}))
	assert.True(t, hasRedisConfig(&config.RedisConfig{URI: "localhost:6379"}))
	assert.False(t, hasRedisConfig(&config.RedisConfig{UseSentinel: true}))
	assert.True(t, hasRedisConfig(&config.RedisConfig{UseCluster: true, ClusterNodes: []string{"a:1"}}))
}
