package repo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/pkordes/trip-planner/backend/migrations"
)

// Migrate applies every pending embedded migration to db and returns the
// number of migrations that ran.
// goose needs a *sql.DB; in production wrap the pool with stdlib.OpenDBFromPool.
func Migrate(ctx context.Context, db *sql.DB) (int, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return 0, fmt.Errorf("repo.Migrate: create goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return 0, fmt.Errorf("repo.Migrate: up: %w", err)
	}
	return len(results), nil
}
