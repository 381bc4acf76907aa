// Package posts implements the public post board: storage and a thin
// service that validates new posts.
package posts

import (
	"context"
	"database/sql"
)

// Repository stores posts. List returns them newest first.
type Repository interface {
	Create(ctx context.Context, post *Post) (*Post, error)
	List(ctx context.Context) ([]Post, error)
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}
