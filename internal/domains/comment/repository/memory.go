package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/comment"
)

// memoryRepository keeps comments in a map guarded by an RWMutex. Used by
// service tests in place of postgres.
type memoryRepository struct {
	mu       sync.RWMutex
	comments map[uuid.UUID]*comment.Comment
}

func NewMemoryRepository() comment.Repository {
	return &memoryRepository{comments: make(map[uuid.UUID]*comment.Comment)}
}

func (r *memoryRepository) Create(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := *c
	r.comments[c.ID] = &cp
	return nil
}

func (r *memoryRepository) ListByPost(_ context.Context, postID uuid.UUID) ([]*comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*comment.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.Before(out[j].Created)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (r *memoryRepository) DeleteByPost(_ context.Context, postID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.PostID == postID {
			delete(r.comments, id)
		}
	}
	return nil
}

func (r *memoryRepository) DeleteByAuthor(_ context.Context, authorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, c := range r.comments {
		if c.AuthorID == authorID {
			delete(r.comments, id)
		}
	}
	return nil
}
