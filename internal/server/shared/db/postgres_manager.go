package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/server/migrations"
	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type PostgresRepositoryManager struct {
	db    *sql.DB
	users users.Repository
	posts posts.Repository
}

func (m *PostgresRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *PostgresRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *PostgresRepositoryManager) Ping(ctx context.Context) error {
	return m.db.PingContext(ctx)
}

func (m *PostgresRepositoryManager) Close() error {
	return m.db.Close()
}

func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context) error {
	return migrateUp(ctx, m.db, migrations.Postgres)
}

func NewPostgresRepositoryManager(ctx context.Context, dsn string) (RepositoryManager, error) {

	db, err := openDB("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	m := &PostgresRepositoryManager{
		db:    db,
		users: users.NewPostgresRepository(db),
		posts: posts.NewPostgresRepository(db),
	}

	err = m.RunMigrations(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	return m, nil
}
