package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "dbx.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE t (id INTEGER PRIMARY KEY, v TEXT NOT NULL UNIQUE, w TEXT CHECK (w <> 'bad'))`)
	require.NoError(t, err)
	return db
}

func TestIsUniqueViolation_SQLiteUnique(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := db.ExecContext(ctx, `INSERT INTO t(v) VALUES ('alice')`)
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, `INSERT INTO t(v) VALUES ('alice')`)
	require.Error(t, err)

	assert.True(t, IsUniqueViolation(err))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert user: %w", err)))
}

func TestIsUniqueViolation_SQLiteCheckIsNotUnique(t *testing.T) {
	db := setupDB(t)

	_, err := db.ExecContext(context.Background(), `INSERT INTO t(v, w) VALUES ('x', 'bad')`)
	require.Error(t, err)

	assert.False(t, IsUniqueViolation(err))
}

func TestIsUniqueViolation_Postgres(t *testing.T) {
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}
	notNull := &pgconn.PgError{Code: "23502"}

	assert.True(t, IsUniqueViolation(fmt.Errorf("db error: %w", unique)))
	assert.False(t, IsUniqueViolation(notNull))
}

func TestIsUniqueViolation_Other(t *testing.T) {
	assert.False(t, IsUniqueViolation(nil))
	assert.False(t, IsUniqueViolation(errors.New("connection refused")))
	assert.True(t, IsUniqueViolation(errors.New("UNIQUE constraint failed: users.email")))
}
