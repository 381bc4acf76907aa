package posts

import (
	"context"
	"sync"
	"time"
)

type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	posts  []Post
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, post *Post) (*Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	post.ID = r.nextID
	post.CreatedAt = time.Now()
	r.posts = append(r.posts, *post)

	return post, nil
}

// List walks the slice backwards; insertion order is creation order.
func (r *InMemoryRepository) List(ctx context.Context) ([]Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Post, 0, len(r.posts))
	for i := len(r.posts) - 1; i >= 0; i-- {
		result = append(result, r.posts[i])
	}

	return result, nil
}
