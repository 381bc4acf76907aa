package db

import (
	"context"

	"github.com/dmitrijs2005/gophboard/internal/server/posts"
	"github.com/dmitrijs2005/gophboard/internal/server/users"
)

// InMemoryRepositoryManager keeps everything in process memory; data is lost
// on restart.
type InMemoryRepositoryManager struct {
	users *users.InMemoryRepository
	posts *posts.InMemoryRepository
}

func (m *InMemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}

func (m *InMemoryRepositoryManager) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (m *InMemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *InMemoryRepositoryManager) Posts() posts.Repository {
	return m.posts
}

func (m *InMemoryRepositoryManager) Close() error {
	return nil
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{
		users: users.NewInMemoryRepository(),
		posts: posts.NewInMemoryRepository(),
	}
}
