package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/user"
)

// memoryRepository keeps users in a map; used by unit tests in place of
// postgres. Returned entities are copies so callers cannot mutate the store.
type memoryRepository struct {
	mu    sync.RWMutex
	users map[uuid.UUID]*user.User
}

func NewMemoryRepository() user.Repository {
	return &memoryRepository{users: make(map[uuid.UUID]*user.User)}
}

func (r *memoryRepository) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.users {
		if existing.Username == u.Username {
			return user.ErrUsernameAlreadyExists
		}
		if existing.Email == u.Email {
			return user.ErrEmailAlreadyExists
		}
	}

	stored := *u
	r.users[u.ID] = &stored
	return nil
}

func (r *memoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	result := *u
	return &result, nil
}

func (r *memoryRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			result := *u
			return &result, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			result := *u
			return &result, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var users []*user.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			result := *u
			users = append(users, &result)
		}
	}
	return users, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return user.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}
