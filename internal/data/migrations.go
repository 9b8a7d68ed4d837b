package data

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/BeauMercier/drasticClientPortal/internal/migrate"
)

// RunMigrations applies the embedded schema through a database/sql handle
// borrowed from the pool.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) ([]string, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	applied, err := migrate.Run(ctx, db, logger)
	if err != nil {
		return applied, fmt.Errorf("run migrations: %w", err)
	}
	return applied, nil
}

// MigrationStatus lists embedded migrations and whether each is applied.
func MigrationStatus(ctx context.Context, pool *pgxpool.Pool) ([]migrate.Status, error) {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return migrate.List(ctx, db)
}
