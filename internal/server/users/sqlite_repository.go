package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
	"github.com/dmitrijs2005/gophboard/internal/dbx"
)

// SQLiteRepository stores users in SQLite; created_at is kept as Unix
// milliseconds.
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *User) (*User, error) {
	query :=
		`INSERT INTO users (username, email, username_lower, email_lower, password_hash)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id, created_at`

	var createdAt int64
	err := r.db.QueryRowContext(ctx, query,
		user.Username, user.Email, LoginKey(user.Username), LoginKey(user.Email), user.PasswordHash).
		Scan(&user.ID, &createdAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %v", common.ErrorAlreadyExists, err)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = time.UnixMilli(createdAt)
	return user, nil
}

func (r *SQLiteRepository) GetUserByLoginID(ctx context.Context, loginID string) (*User, error) {
	query :=
		`SELECT id, username, email, password_hash, created_at FROM users
		 WHERE username_lower = ? OR email_lower = ?
		 ORDER BY id
		 LIMIT 1`

	key := LoginKey(loginID)

	var createdAt int64
	user := &User{}
	err := r.db.QueryRowContext(ctx, query, key, key).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.CreatedAt = time.UnixMilli(createdAt)
	return user, nil
}
