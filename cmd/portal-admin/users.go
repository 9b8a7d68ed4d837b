package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/BeauMercier/drasticClientPortal/internal/adapters/password"
	redisadapter "github.com/BeauMercier/drasticClientPortal/internal/adapters/redis"
	"github.com/BeauMercier/drasticClientPortal/internal/data"
	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
	"github.com/BeauMercier/drasticClientPortal/internal/validation"
)

type createUserOptions struct {
	Email         string          `json:"email"    validate:"required,email,max=254"`
	Name          string          `json:"name"     validate:"required,max=100"`
	Company       string          `json:"company"  validate:"omitempty,max=200"`
	Role          domainauth.Role `json:"role"`
	Password      string          `json:"password" validate:"required,min=8,max=72"`
	PasswordStdin bool            `json:"-"`
}

type revokeOptions struct {
	Email string
}

// sessionRevoker deletes every session indexed under a user.
type sessionRevoker interface {
	DeleteForUser(ctx context.Context, userID string) (int64, error)
}

func runCreateUser(cmdCtx *commandContext, args []string) error {
	opts, err := parseCreateUserFlags(args, os.Stdin)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, pool *pgxpool.Pool) error {
		u, createErr := createUser(ctx, data.NewUserRepo(pool), password.NewBcrypt(0), opts)
		if createErr != nil {
			return createErr
		}
		return writef(cmdCtx.Out, "created %s user %s (%s)\n", u.Role, u.Email, u.ID)
	})
}

func createUser(
	ctx context.Context,
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	opts createUserOptions,
) (*model.User, error) {
	opts.Email = model.NormalizeEmail(opts.Email)
	opts.Name = strings.TrimSpace(opts.Name)
	opts.Company = strings.TrimSpace(opts.Company)
	if err := validation.New().Struct(opts); err != nil {
		return nil, err
	}
	if !opts.Role.Valid() {
		return nil, fmt.Errorf("unknown role %q", opts.Role)
	}

	hash, err := hasher.Hash(opts.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	var company *string
	if opts.Company != "" {
		company = &opts.Company
	}
	u, err := users.Create(ctx, model.CreateUserRequest{
		Email:        opts.Email,
		Name:         opts.Name,
		CompanyName:  company,
		Role:         opts.Role,
		PasswordHash: hash,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func parseCreateUserFlags(args []string, stdin io.Reader) (createUserOptions, error) {
	fs := flag.NewFlagSet("create-user", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts createUserOptions
	role := string(domainauth.RoleClient)

	fs.StringVar(&opts.Email, "email", "", "Account email (required)")
	fs.StringVar(&opts.Name, "name", "", "Display name (required)")
	fs.StringVar(&opts.Company, "company", "", "Company name")
	fs.StringVar(&role, "role", role, "Account role: client or admin")
	fs.StringVar(&opts.Password, "password", "", "Account password (prefer --password-stdin)")
	fs.BoolVar(&opts.PasswordStdin, "password-stdin", false, "Read the password from the first line of stdin")

	if err := fs.Parse(args); err != nil {
		return createUserOptions{}, err
	}

	parsed, err := domainauth.ParseRole(role)
	if err != nil {
		return createUserOptions{}, err
	}
	opts.Role = parsed

	if opts.PasswordStdin {
		if opts.Password != "" {
			return createUserOptions{}, errors.New("--password and --password-stdin are mutually exclusive")
		}
		line, readErr := bufio.NewReader(stdin).ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return createUserOptions{}, fmt.Errorf("read password: %w", readErr)
		}
		opts.Password = strings.TrimRight(line, "\r\n")
	}

	if strings.TrimSpace(opts.Email) == "" {
		return createUserOptions{}, errors.New("--email is required")
	}
	if opts.Password == "" {
		return createUserOptions{}, errors.New("--password or --password-stdin is required")
	}
	return opts, nil
}

func runRevokeSessions(cmdCtx *commandContext, args []string) error {
	opts, err := parseRevokeFlags(args)
	if err != nil {
		return err
	}
	if !hasRedisConfig(&cmdCtx.Config.Redis) {
		return errRedisNotConfigured
	}

	return withDatabase(cmdCtx, defaultCommandTimeout, func(ctx context.Context, pool *pgxpool.Pool) error {
		return withRedis(ctx, cmdCtx, func(client redis.UniversalClient) error {
			n, revokeErr := revokeSessions(ctx, data.NewUserRepo(pool), redisadapter.NewSessionStore(client), opts.Email)
			if revokeErr != nil {
				return revokeErr
			}
			return writef(cmdCtx.Out, "revoked %d session(s) for %s\n", n, model.NormalizeEmail(opts.Email))
		})
	})
}

func revokeSessions(ctx context.Context, users ports.UserRepository, sessions sessionRevoker, email string) (int64, error) {
	u, err := users.GetByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("lookup user: %w", err)
	}
	n, err := sessions.DeleteForUser(ctx, u.ID)
	if err != nil {
		return 0, fmt.Errorf("revoke sessions: %w", err)
	}
	return n, nil
}

func parseRevokeFlags(args []string) (revokeOptions, error) {
	fs := flag.NewFlagSet("revoke-sessions", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var opts revokeOptions
	fs.StringVar(&opts.Email, "email", "", "Email of the user whose sessions are revoked (required)")

	if err := fs.Parse(args); err != nil {
		return revokeOptions{}, err
	}
	if strings.TrimSpace(opts.Email) == "" {
		return revokeOptions{}, errors.New("--email is required")
	}
	return opts, nil
}
