package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/domains/follow"
	followrepo "microblog-backend/internal/domains/follow/repository"
	"microblog-backend/internal/domains/user"
	userrepo "microblog-backend/internal/domains/user/repository"
)

func setup(t *testing.T) (follow.Service, follow.Repository, user.Repository) {
	t.Helper()
	followRepo := followrepo.NewMemoryRepository()
	userRepo := userrepo.NewMemoryRepository()
	return NewFollowService(followRepo, userRepo), followRepo, userRepo
}

func addUser(t *testing.T, repo user.Repository, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestFollowIsIdempotent(t *testing.T) {
	svc, _, userRepo := setup(t)
	ctx := context.Background()

	follower := addUser(t, userRepo, "follower")
	author := addUser(t, userRepo, "author")

	require.NoError(t, svc.Follow(ctx, follower.ID, "author"))
	// A second follow of the same author succeeds without creating a
	// second edge.
	require.NoError(t, svc.Follow(ctx, follower.ID, "author"))

	following, err := svc.IsFollowing(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, following)
}

func TestSelfFollowIsIgnored(t *testing.T) {
	svc, followRepo, userRepo := setup(t)
	ctx := context.Background()

	u := addUser(t, userRepo, "loner")

	require.NoError(t, svc.Follow(ctx, u.ID, "loner"))

	exists, err := followRepo.Exists(ctx, u.ID, u.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFollowUnknownUser(t *testing.T) {
	svc, _, userRepo := setup(t)
	ctx := context.Background()

	follower := addUser(t, userRepo, "follower")

	err := svc.Follow(ctx, follower.ID, "ghost")
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestUnfollow(t *testing.T) {
	svc, _, userRepo := setup(t)
	ctx := context.Background()

	follower := addUser(t, userRepo, "follower")
	author := addUser(t, userRepo, "author")

	require.NoError(t, svc.Follow(ctx, follower.ID, "author"))
	require.NoError(t, svc.Unfollow(ctx, follower.ID, "author"))

	following, err := svc.IsFollowing(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, following)

	// Unfollowing someone not followed is a quiet no-op.
	require.NoError(t, svc.Unfollow(ctx, follower.ID, "author"))
}

func TestIsFollowingAnonymousViewer(t *testing.T) {
	svc, _, userRepo := setup(t)
	ctx := context.Background()

	author := addUser(t, userRepo, "author")

	following, err := svc.IsFollowing(ctx, uuid.Nil, author.ID)
	require.NoError(t, err)
	assert.False(t, following)
}
