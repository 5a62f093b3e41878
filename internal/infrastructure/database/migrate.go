package database

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"

	"github.com/eslsoft/ordasafn/internal/infrastructure/database/migrate"
)

// Migrate creates or upgrades the corpus tables.
func Migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv, schema.WithForeignKeys(true))
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, migrate.Tables...); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}
