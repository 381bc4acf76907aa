package posts

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/gophboard/internal/dbx"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	query :=
		`INSERT INTO posts (title, content)
		 VALUES ($1, $2)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query, post.Title, nullString(post.Content)).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]Post, error) {
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
			p       Post
			content sql.NullString
		)
		if err := rows.Scan(&p.ID, &p.Title, &content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan error: %w", err)
		}
		p.Content = stringPtr(content)
		result = append(result, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return result, nil
}
