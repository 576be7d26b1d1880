package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"microblog-backend/internal/config"
	"microblog-backend/internal/domains/comment"
	commentrepo "microblog-backend/internal/domains/comment/repository"
	"microblog-backend/internal/domains/follow"
	followrepo "microblog-backend/internal/domains/follow/repository"
	grouprepo "microblog-backend/internal/domains/group/repository"
	"microblog-backend/internal/domains/post"
	postrepo "microblog-backend/internal/domains/post/repository"
	postservice "microblog-backend/internal/domains/post/service"
	"microblog-backend/internal/domains/user"
	userrepo "microblog-backend/internal/domains/user/repository"
	infracache "microblog-backend/internal/infrastructure/cache"
	"microblog-backend/pkg/jwt"
)

type nopStorage struct{}

func (nopStorage) Upload(_ context.Context, key string, _ []byte, _ string) (string, error) {
	return "http://storage.local/" + key, nil
}

func (nopStorage) DeleteByPrefix(context.Context, string) error { return nil }

type env struct {
	svc         user.Service
	userRepo    user.Repository
	postRepo    post.Repository
	postSvc     post.Service
	commentRepo comment.Repository
	followRepo  follow.Repository
	jwtManager  *jwt.Manager
}

func setup(t *testing.T) *env {
	t.Helper()

	userRepo := userrepo.NewMemoryRepository()
	postRepo := postrepo.NewMemoryRepository()
	groupRepo := grouprepo.NewMemoryRepository()
	commentRepo := commentrepo.NewMemoryRepository()
	followRepo := followrepo.NewMemoryRepository()

	postSvc := postservice.NewPostService(
		postRepo, userRepo, groupRepo, followRepo, commentRepo,
		nopStorage{}, infracache.NewMemoryCache(),
		config.FeedConfig{PageSize: 10, IndexCacheTTL: time.Second},
	)
	jwtManager := jwt.NewManager("test-secret", time.Hour, 2*time.Hour)

	return &env{
		svc:         NewUserService(userRepo, postRepo, postSvc, commentRepo, followRepo, jwtManager),
		userRepo:    userRepo,
		postRepo:    postRepo,
		postSvc:     postSvc,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		jwtManager:  jwtManager,
	}
}

func registerReq(username string) user.RegisterRequest {
	return user.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "s3cret-pass",
	}
}

func TestRegister(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	dto, err := e.svc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", dto.Username)

	stored, err := e.userRepo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
}

func TestRegisterConflicts(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	_, err = e.svc.Register(ctx, registerReq("alice"))
	assert.ErrorIs(t, err, user.ErrUsernameAlreadyExists)

	_, err = e.svc.Register(ctx, user.RegisterRequest{
		Username: "alice2",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, user.ErrEmailAlreadyExists)
}

func TestRegisterValidation(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  user.RegisterRequest
	}{
		{name: "short username", req: user.RegisterRequest{Username: "ab", Email: "a@b.com", Password: "s3cret-pass"}},
		{name: "bad username characters", req: user.RegisterRequest{Username: "bad name", Email: "a@b.com", Password: "s3cret-pass"}},
		{name: "bad email", req: user.RegisterRequest{Username: "alice", Email: "nope", Password: "s3cret-pass"}},
		{name: "short password", req: user.RegisterRequest{Username: "alice", Email: "a@b.com", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.svc.Register(ctx, tt.req)
			assert.Error(t, err)
		})
	}
}

func TestLogin(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	_, err := e.svc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)

	resp, err := e.svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.User.Username)

	claims, err := e.jwtManager.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "alice", claims.Username)

	_, err = e.svc.Login(ctx, user.LoginRequest{Email: "alice@example.com", Password: "wrong-pass"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	_, err = e.svc.Login(ctx, user.LoginRequest{Email: "ghost@example.com", Password: "s3cret-pass"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
}

func TestDeleteAccountCascades(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	alice, err := e.svc.Register(ctx, registerReq("alice"))
	require.NoError(t, err)
	bob, err := e.svc.Register(ctx, registerReq("bob"))
	require.NoError(t, err)

	// Alice posts; Bob posts; Alice comments on Bob's post; they follow
	// each other.
	alicePost, err := e.postSvc.Create(ctx, alice.ID, post.CreatePostRequest{Text: "by alice"}, nil)
	require.NoError(t, err)
	bobPost, err := e.postSvc.Create(ctx, bob.ID, post.CreatePostRequest{Text: "by bob"}, nil)
	require.NoError(t, err)

	require.NoError(t, e.commentRepo.Create(ctx, &comment.Comment{
		ID: uuid.New(), Text: "hi bob", Created: time.Now().UTC(), PostID: bobPost.ID, AuthorID: alice.ID,
	}))
	require.NoError(t, e.followRepo.Create(ctx, &follow.Follow{
		ID: uuid.New(), UserID: alice.ID, AuthorID: bob.ID, CreatedAt: time.Now().UTC(),
	}))
	require.NoError(t, e.followRepo.Create(ctx, &follow.Follow{
		ID: uuid.New(), UserID: bob.ID, AuthorID: alice.ID, CreatedAt: time.Now().UTC(),
	}))

	require.NoError(t, e.svc.DeleteAccount(ctx, alice.ID))

	_, err = e.userRepo.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, user.ErrUserNotFound)

	_, err = e.postRepo.GetByID(ctx, alicePost.ID)
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	// Bob's post stays, minus Alice's comment.
	_, err = e.postRepo.GetByID(ctx, bobPost.ID)
	require.NoError(t, err)
	comments, err := e.commentRepo.ListByPost(ctx, bobPost.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	// Both follow directions are gone.
	authorIDs, err := e.followRepo.ListAuthorIDs(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, authorIDs)
}
