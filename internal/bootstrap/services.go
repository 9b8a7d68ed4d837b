package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/BeauMercier/drasticClientPortal/config"
	"github.com/BeauMercier/drasticClientPortal/internal/adapters/gdrive"
	"github.com/BeauMercier/drasticClientPortal/internal/adapters/jwttoken"
	"github.com/BeauMercier/drasticClientPortal/internal/adapters/password"
	redisadapter "github.com/BeauMercier/drasticClientPortal/internal/adapters/redis"
	"github.com/BeauMercier/drasticClientPortal/internal/data"
	"github.com/BeauMercier/drasticClientPortal/internal/ports"
	"github.com/BeauMercier/drasticClientPortal/internal/service"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	Auth        *service.AuthService
	Credentials *service.CredentialValidator
	Folders     *service.FolderResolver
	Files       *service.FileService
	Dashboard   *service.DashboardService

	Users    ports.UserRepository
	Hasher   ports.PasswordHasher
	Sessions *redisadapter.SessionStore
	Storage  ports.StorageClient
}

// ServiceDeps groups dependencies for service initialization.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          data.DBTX
	RedisClient redis.UniversalClient
	// Storage is the client folder backend, typically from NewStorageClient.
	Storage ports.StorageClient
	Logger  *slog.Logger
}

// NewStorageClient builds the Drive client from the service account settings.
func NewStorageClient(ctx context.Context, cfg config.StorageConfig, logger *slog.Logger) (*gdrive.Client, error) {
	client, err := gdrive.New(ctx, gdrive.Config{
		ClientEmail: cfg.ClientEmail,
		PrivateKey:  cfg.PrivateKey,
		Scopes:      cfg.Scopes,
		Endpoint:    cfg.Endpoint,
		Timeout:     cfg.Timeout,
		Logger:      logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create drive client: %w", err)
	}
	return client, nil
}

// NewServices wires repositories and adapters into the domain services.
func NewServices(deps *ServiceDeps) (ServiceContainer, error) {
	if err := deps.validate(); err != nil {
		return ServiceContainer{}, err
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	tokens, err := jwttoken.NewCodec(jwttoken.Config{
		Secret: cfg.Auth.Secret,
		Issuer: cfg.Auth.Issuer,
	})
	if err != nil {
		return ServiceContainer{}, fmt.Errorf("create token codec: %w", err)
	}

	users := data.NewUserRepo(deps.DB)
	hasher := password.NewBcrypt(0)
	sessions := redisadapter.NewSessionStore(deps.RedisClient)

	credentials := service.NewCredentialValidator(service.CredentialValidatorOptions{
		Users:  users,
		Hasher: hasher,
		Logger: logger,
	})
	auth := service.NewAuthService(service.AuthServiceOptions{
		Credentials: credentials,
		Users:       users,
		Hasher:      hasher,
		Sessions:    sessions,
		Tokens:      tokens,
		Config: service.AuthServiceConfig{
			SessionTTL:    cfg.Auth.SessionTTL,
			RefreshWindow: cfg.Auth.RefreshWindow,
		},
		Logger: logger,
	})

	folders := service.NewFolderResolver(service.FolderResolverOptions{
		Storage: deps.Storage,
		Logger:  logger,
	})
	files := service.NewFileService(service.FileServiceOptions{
		Storage: deps.Storage,
		Folders: folders,
		Logger:  logger,
	})

	return ServiceContainer{
		Auth:        auth,
		Credentials: credentials,
		Folders:     folders,
		Files:       files,
		Dashboard:   service.NewDashboardService(),
		Users:       users,
		Hasher:      hasher,
		Sessions:    sessions,
		Storage:     deps.Storage,
	}, nil
}

func (d *ServiceDeps) validate() error {
	switch {
	case d == nil:
		return errors.New("service deps are required")
	case d.Config == nil:
		return errors.New("service deps missing config")
	case d.DB == nil:
		return errors.New("service deps missing database")
	case d.RedisClient == nil:
		return errors.New("service deps missing redis client")
	case d.Storage == nil:
		return errors.New("service deps missing storage client")
	}
	return nil
}
