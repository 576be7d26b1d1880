package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/post"
)

// memoryRepository mirrors the postgres implementation for unit tests,
// including the pub_date DESC, id ordering.
type memoryRepository struct {
	mu    sync.RWMutex
	posts map[uuid.UUID]*post.Post
}

func NewMemoryRepository() post.Repository {
	return &memoryRepository{posts: make(map[uuid.UUID]*post.Post)}
}

func (r *memoryRepository) Create(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *p
	r.posts[p.ID] = &stored
	return nil
}

func (r *memoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, post.ErrPostNotFound
	}
	result := *p
	return &result, nil
}

func (r *memoryRepository) Update(ctx context.Context, p *post.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.posts[p.ID]
	if !ok {
		return post.ErrPostNotFound
	}

	existing.Text = p.Text
	existing.GroupID = p.GroupID
	existing.ImageURL = p.ImageURL
	return nil
}

func (r *memoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return post.ErrPostNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *memoryRepository) CountAll(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.posts), nil
}

func (r *memoryRepository) ListAll(ctx context.Context, limit, offset int) ([]*post.Post, error) {
	return r.list(func(p *post.Post) bool { return true }, limit, offset), nil
}

func (r *memoryRepository) CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	return r.countWhere(func(p *post.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}), nil
}

func (r *memoryRepository) ListByGroup(ctx context.Context, groupID uuid.UUID, limit, offset int) ([]*post.Post, error) {
	return r.list(func(p *post.Post) bool {
		return p.GroupID != nil && *p.GroupID == groupID
	}, limit, offset), nil
}

func (r *memoryRepository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return r.countWhere(func(p *post.Post) bool { return p.AuthorID == authorID }), nil
}

func (r *memoryRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit, offset int) ([]*post.Post, error) {
	return r.list(func(p *post.Post) bool { return p.AuthorID == authorID }, limit, offset), nil
}

func (r *memoryRepository) CountByAuthors(ctx context.Context, authorIDs []uuid.UUID) (int, error) {
	set := idSet(authorIDs)
	return r.countWhere(func(p *post.Post) bool { return set[p.AuthorID] }), nil
}

func (r *memoryRepository) ListByAuthors(ctx context.Context, authorIDs []uuid.UUID, limit, offset int) ([]*post.Post, error) {
	set := idSet(authorIDs)
	return r.list(func(p *post.Post) bool { return set[p.AuthorID] }, limit, offset), nil
}

func (r *memoryRepository) ListIDsByAuthor(ctx context.Context, authorID uuid.UUID) ([]uuid.UUID, error) {
	const noLimit = int(^uint(0) >> 1)
	posts := r.list(func(p *post.Post) bool { return p.AuthorID == authorID }, noLimit, 0)

	ids := make([]uuid.UUID, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids, nil
}

func (r *memoryRepository) ClearGroup(ctx context.Context, groupID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.posts {
		if p.GroupID != nil && *p.GroupID == groupID {
			p.GroupID = nil
		}
	}
	return nil
}

func (r *memoryRepository) countWhere(match func(*post.Post) bool) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, p := range r.posts {
		if match(p) {
			count++
		}
	}
	return count
}

func (r *memoryRepository) list(match func(*post.Post) bool, limit, offset int) []*post.Post {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matched []*post.Post
	for _, p := range r.posts {
		if match(p) {
			result := *p
			matched = append(matched, &result)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].PubDate.Equal(matched[j].PubDate) {
			return matched[i].PubDate.After(matched[j].PubDate)
		}
		return strings.Compare(matched[i].ID.String(), matched[j].ID.String()) < 0
	})

	if offset >= len(matched) {
		return nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched
}

func idSet(ids []uuid.UUID) map[uuid.UUID]bool {
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
