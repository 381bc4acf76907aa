// Package migrations embeds the SQL schema of the server, one directory per
// supported dialect, and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var Migrations embed.FS

// Dialect names a schema directory.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) goose() (goose.Dialect, error) {
	switch d {
	case Postgres:
		return goose.DialectPostgres, nil
	case SQLite:
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported migration dialect %q", string(d))
	}
}

// Up applies every pending migration of dialect to db. Running it again on
// an up-to-date database is a no-op.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) error {
	gd, err := dialect.goose()
	if err != nil {
		return err
	}

	fsys, err := fs.Sub(Migrations, string(dialect))
	if err != nil {
		return fmt.Errorf("migrations fs: %w", err)
	}

	provider, err := goose.NewProvider(gd, db, fsys)
	if err != nil {
		return fmt.Errorf("goose provider: %w", err)
	}

	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
