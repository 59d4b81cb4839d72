package db

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

const createSchemaMigrationsQuery = `
CREATE TABLE IF NOT EXISTS schema_migrations (
  version VARCHAR(255) NOT NULL PRIMARY KEY
)`

// Migrate applies the embedded up migrations for the connection's driver
// that are not yet recorded in schema_migrations. It returns the versions
// it applied, in order.
func Migrate(ctx context.Context, db *sqlx.DB) ([]string, error) {
	d := dialectFor(db.DriverName())

	if _, err := db.ExecContext(ctx, createSchemaMigrationsQuery); err != nil {
		return nil, fmt.Errorf("create schema_migrations: %w", err)
	}

	dir := path.Join("migrations", d.name)
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations for %s: %w", d.name, err)
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".up.sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	var applied []string
	for _, name := range names {
		version := strings.TrimSuffix(name, ".up.sql")

		var count int
		if err := db.GetContext(ctx, &count, db.Rebind("SELECT COUNT(*) FROM schema_migrations WHERE version = ?"), version); err != nil {
			return applied, fmt.Errorf("check migration %s: %w", version, err)
		}
		if count > 0 {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, path.Join(dir, name))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", version, err)
		}
		if _, err := db.ExecContext(ctx, string(content)); err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", version, err)
		}
		if _, err := db.ExecContext(ctx, db.Rebind("INSERT INTO schema_migrations (version) VALUES (?)"), version); err != nil {
			return applied, fmt.Errorf("record migration %s: %w", version, err)
		}

		zap.L().Info("applied migration", zap.String("version", version), zap.String("driver", d.name))
		applied = append(applied, version)
	}

	return applied, nil
}
