package devseed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainauth "github.com/BeauMercier/drasticClientPortal/internal/domain/auth"
	"github.com/BeauMercier/drasticClientPortal/internal/domain/model"
	apperrors "github.com/BeauMercier/drasticClientPortal/internal/errors"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
)

// Account is a development login created by Run.
type Account struct {
	Email    string
	Name     string
	Company  string
	Password string
	Role     domainauth.Role
}

// DefaultAccounts are the development logins. Never seed these outside dev mode.
var DefaultAccounts = []Account{
	{
		Email:    "admin@drastic.digital",
		Name:     "Admin User",
		Company:  "Drastic Digital",
		Password: "password",
		Role:     domainauth.RoleAdmin,
	},
	{
		Email:    "client@example.com",
		Name:     "Client User",
		Company:  "Example Co",
		Password: "password",
		Role:     domainauth.RoleClient,
	},
}

// Services bundles the dependencies needed for development seeding.
type Services struct {
	Users  ports.UserRepository
	Hasher ports.PasswordHasher
}

// Run creates every account in accounts, skipping ones that already exist.
// All accounts are attempted; failures are logged and counted.
func Run(ctx context.Context, svcs Services, accounts []Account, logger *slog.Logger) error {
	if svcs.Users == nil || svcs.Hasher == nil {
		return errors.New("devseed: users and hasher are required")
	}
	failures := 0
	for _, acct := range accounts {
		created, err := seedAccount(ctx, svcs, acct)
		if err != nil {
			if logger != nil {
				logger.ErrorContext(ctx, "failed to seed user", "email", acct.Email, "error", err)
			}
			failures++
			continue
		}
		if logger != nil {
			msg := "user already exists"
			if created {
				msg = "seeded user"
			}
			logger.InfoContext(ctx, msg, "email", acct.Email, "role", acct.Role)
		}
	}
	if failures > 0 {
		return fmt.Errorf("%d seed errors; check logs", failures)
	}
	return nil
}

func seedAccount(ctx context.Context, svcs Services, acct Account) (bool, error) {
	hash, err := svcs.Hasher.Hash(acct.Password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}
	var company *string
	if acct.Company != "" {
		company = &acct.Company
	}
	_, err = svcs.Users.Create(ctx, model.CreateUserRequest{
		Email:        acct.Email,
		Name:         acct.Name,
		CompanyName:  company,
		Role:         acct.Role,
		PasswordHash: hash,
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
