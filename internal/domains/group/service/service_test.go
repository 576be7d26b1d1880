package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/domains/group"
	grouprepo "microblog-backend/internal/domains/group/repository"
	"microblog-backend/internal/domains/post"
	postrepo "microblog-backend/internal/domains/post/repository"
)

func setup(t *testing.T) (group.Service, post.Repository) {
	t.Helper()
	postRepo := postrepo.NewMemoryRepository()
	return NewGroupService(grouprepo.NewMemoryRepository(), postRepo), postRepo
}

func TestCreateGroup(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		req      group.CreateGroupRequest
		wantSlug string
		wantErr  bool
	}{
		{
			name:     "explicit slug",
			req:      group.CreateGroupRequest{Title: "Go Talk", Slug: "gotalk"},
			wantSlug: "gotalk",
		},
		{
			name:     "slug derived from title",
			req:      group.CreateGroupRequest{Title: "Café Culture"},
			wantSlug: "cafe-culture",
		},
		{
			name:    "missing title",
			req:     group.CreateGroupRequest{Slug: "no-title"},
			wantErr: true,
		},
		{
			name:    "invalid slug characters",
			req:     group.CreateGroupRequest{Title: "Bad", Slug: "Bad Slug!"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dto, err := svc.Create(ctx, tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, dto.Slug)
		})
	}
}

func TestCreateGroupSlugConflict(t *testing.T) {
	svc, _ := setup(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, group.CreateGroupRequest{Title: "First", Slug: "taken"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, group.CreateGroupRequest{Title: "Second", Slug: "taken"})
	assert.ErrorIs(t, err, group.ErrSlugAlreadyExists)
}

func TestDeleteGroupKeepsPosts(t *testing.T) {
	svc, postRepo := setup(t)
	ctx := context.Background()

	dto, err := svc.Create(ctx, group.CreateGroupRequest{Title: "Doomed", Slug: "doomed"})
	require.NoError(t, err)

	p := &post.Post{
		ID:       uuid.New(),
		Text:     "survives",
		PubDate:  time.Now().UTC(),
		AuthorID: uuid.New(),
		GroupID:  &dto.ID,
	}
	require.NoError(t, postRepo.Create(ctx, p))

	require.NoError(t, svc.Delete(ctx, "doomed"))

	_, err = svc.GetBySlug(ctx, "doomed")
	assert.ErrorIs(t, err, group.ErrGroupNotFound)

	// The post survives, detached from the deleted group.
	kept, err := postRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Nil(t, kept.GroupID)
}

func TestDeleteUnknownGroup(t *testing.T) {
	svc, _ := setup(t)
	err := svc.Delete(context.Background(), "missing")
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}
