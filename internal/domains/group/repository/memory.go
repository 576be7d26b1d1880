package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/group"
)

type memoryRepository struct {
	mu     sync.RWMutex
	groups map[uuid.UUID]*group.Group
}

func NewMemoryRepository() group.Repository {
	return &memoryRepository{groups: make(map[uuid.UUID]*group.Group)}
}

func (r *memoryRepository) Create(ctx context.Context, g *group.Group) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.groups {
		if existing.Slug == g.Slug {
			return group.ErrSlugAlreadyExists
		}
	}

	stored := *g
	r.groups[g.ID] = &stored
	return nil
}

func (r *memoryRepository) GetBySlug(ctx context.Context, slug string) (*group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.Slug == slug {
			result := *g
			return &result, nil
		}
	}
	return nil, group.ErrGroupNotFound
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.groups[id]
	if !ok {
		return nil, group.ErrGroupNotFound
	}
	result := *g
	return &result, nil
}

func (r *memoryRepository) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]*group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var groups []*group.Group
	for _, id := range ids {
		if g, ok := r.groups[id]; ok {
			result := *g
			groups = append(groups, &result)
		}
	}
	return groups, nil
}

func (r *memoryRepository) List(ctx context.Context) ([]*group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var groups []*group.Group
	for _, g := range r.groups {
		result := *g
		groups = append(groups, &result)
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Title < groups[j].Title
	})

	return groups, nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.groups[id]; !ok {
		return group.ErrGroupNotFound
	}
	delete(r.groups, id)
	return nil
}
