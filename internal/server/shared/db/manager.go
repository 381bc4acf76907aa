// Package db selects and opens the storage backend of the server and vends
// the repositories bound to it.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/server/migrations"
	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
)

// Supported values of the database driver setting.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type RepositoryManager interface {
	RunMigrations(context.Context) error
	Ping(context.Context) error
	Users() users.Repository
	Posts() posts.Repository
	Close() error
}

// seams for tests
var (
	openDB    = sql.Open
	migrateUp = migrations.Up
)

// NewRepositoryManager opens the store named by driver and brings its schema
// up to date.
func NewRepositoryManager(ctx context.Context, driver, dsn string) (RepositoryManager, error) {
	switch driver {
	case DriverSQLite, "sqlite3", "":
		return NewSQLiteRepositoryManager(ctx, dsn)
	case DriverPostgres, "pgx", "postgresql":
		return NewPostgresRepositoryManager(ctx, dsn)
	case DriverMemory:
		return NewInMemoryRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}
