package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophboard/internal/common"
)

// InMemoryRepository keeps users in process memory. It is used by the
// "memory" database driver and in tests.
type InMemoryRepository struct {
	mu     sync.RWMutex
	nextID int64
	users  []User
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, user *User) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	username, email := LoginKey(user.Username), LoginKey(user.Email)
	for _, u := range r.users {
		if LoginKey(u.Username) == username || LoginKey(u.Email) == email {
			return nil, common.ErrorAlreadyExists
		}
	}

	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	r.users = append(r.users, *user)

	return user, nil
}

func (r *InMemoryRepository) GetUserByLoginID(ctx context.Context, loginID string) (*User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := LoginKey(loginID)
	for _, u := range r.users {
		if LoginKey(u.Username) == key || LoginKey(u.Email) == key {
			found := u
			return &found, nil
		}
	}

	return nil, common.ErrorNotFound
}
