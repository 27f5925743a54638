package shop

import (
	"context"
	"database/sql"
	"io/fs"

	"github.com/goliatone/go-logger/glog"
	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

func init() {
	persistence.RegisterModel((*User)(nil))
	persistence.RegisterModel((*Client)(nil))
}

// NewPersistence builds the database client, registers the embedded
// dialect migrations, and runs them against the given connection.
func NewPersistence(ctx context.Context, cfg persistence.Config, sqldb *sql.DB, logger glog.Logger) (*bun.DB, error) {
	client, err := persistence.New(cfg, sqldb, sqlitedialect.New())
	if err != nil {
		return nil, err
	}

	if logger != nil {
		client.SetLogger(logger)
	}

	migrations, err := fs.Sub(GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return nil, err
	}

	client.RegisterDialectMigrations(
		migrations,
		persistence.WithDialectSourceLabel("data/sql/migrations"),
		persistence.WithValidationTargets("sqlite"),
	)

	if err := client.ValidateDialects(ctx); err != nil {
		return nil, err
	}

	if err := client.Migrate(ctx); err != nil {
		return nil, err
	}

	return client.DB(), nil
}
