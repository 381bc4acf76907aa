package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/gophboard/internal/server/migrations"
	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
	_ "modernc.org/sqlite"
)

// DefaultSQLiteFile is used when no DSN is configured.
const DefaultSQLiteFile = "data.sqlite"

const sqlitePragmas = "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

type SQLiteRepositoryManager struct {
	db    *sql.DB
	users users.Repository
	posts posts.Repository
}

func (m *SQLiteRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *SQLiteRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *SQLiteRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *SQLiteRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *SQLiteRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrateUp(ctx, m.db, migrations.SQLite)
}

// sqliteDSN appends the connection pragmas unless the DSN already sets its
// own query parameters.
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = DefaultSQLiteFile
	}
	if strings.Contains(dsn, "?") {
		return dsn
	}
	return dsn + "?" + sqlitePragmas
}

func NewSQLiteRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {
	db, err := openDB("sqlite", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	// every connection to :memory: would otherwise see its own empty database
	if strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory") {
		db.SetMaxOpenConns(1)
	}

	m := &SQLiteRepositoryManager{
		db:    db,
		users: users.NewSQLiteRepository(db),
		posts: posts.NewSQLiteRepository(db),
	}

	if err := m.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
