package posts

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/dbx"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	query :=
		`INSERT INTO posts (title, content)
		 VALUES (?, ?)
		 RETURNING id, created_at`

	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, post.Title, nullString(post.Content)).Scan(&post.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	post.CreatedAt = time.UnixMilli(createdAt)
	return post, nil
}

func (r *SQLiteRepository) List(ctx context.Context) ([]Post, error) {
	query :=
		`SELECT id, title, content, created_at FROM posts
		 ORDER BY id DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []Post{}
	for rows.Next() {
		var (
			p         Post
			content   sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&p.ID, &p.Title, &content, &createdAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		p.Content = stringPtr(content)
		p.CreatedAt = time.UnixMilli(createdAt)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
