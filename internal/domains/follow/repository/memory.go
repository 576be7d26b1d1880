package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/follow"
)

type edge struct {
	userID   uuid.UUID
	authorID uuid.UUID
}

// memoryRepository keys edges by the (user, author) pair, which makes the
// uniqueness constraint a plain map lookup. Used by service tests.
type memoryRepository struct {
	mu    sync.RWMutex
	edges map[edge]*follow.Follow
}

func NewMemoryRepository() follow.Repository {
	return &memoryRepository{edges: make(map[edge]*follow.Follow)}
}

func (r *memoryRepository) Create(_ context.Context, f *follow.Follow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := edge{userID: f.UserID, authorID: f.AuthorID}
	if _, ok := r.edges[key]; ok {
		return follow.ErrAlreadyFollowing
	}
	cp := *f
	r.edges[key] = &cp
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, userID, authorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.edges, edge{userID: userID, authorID: authorID})
	return nil
}

func (r *memoryRepository) Exists(_ context.Context, userID, authorID uuid.UUID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.edges[edge{userID: userID, authorID: authorID}]
	return ok, nil
}

func (r *memoryRepository) ListAuthorIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var ids []uuid.UUID
	for key := range r.edges {
		if key.userID == userID {
			ids = append(ids, key.authorID)
		}
	}
	return ids, nil
}

func (r *memoryRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key := range r.edges {
		if key.userID == userID || key.authorID == userID {
			delete(r.edges, key)
		}
	}
	return nil
}
