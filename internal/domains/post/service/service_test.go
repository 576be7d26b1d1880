package service

import (
	"context"
	"fmt"
	"sync"
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
	"microblog-backend/internal/domains/group"
	grouprepo "microblog-backend/internal/domains/group/repository"
	"microblog-backend/internal/domains/post"
	postrepo "microblog-backend/internal/domains/post/repository"
	"microblog-backend/internal/domains/user"
	userrepo "microblog-backend/internal/domains/user/repository"
	infracache "microblog-backend/internal/infrastructure/cache"
)

// stubStorage records uploads and prefix deletions in memory.
type stubStorage struct {
	mu       sync.Mutex
	uploads  map[string][]byte
	deleted  []string
	uploadsN int
}

func newStubStorage() *stubStorage {
	return &stubStorage{uploads: make(map[string][]byte)}
}

func (s *stubStorage) Upload(_ context.Context, key string, data []byte, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.uploads[key] = data
	s.uploadsN++
	return "http://storage.local/" + key, nil
}

func (s *stubStorage) DeleteByPrefix(_ context.Context, prefix string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, prefix)
	return nil
}

type fixture struct {
	svc         post.Service
	postRepo    post.Repository
	userRepo    user.Repository
	groupRepo   group.Repository
	followRepo  follow.Repository
	commentRepo comment.Repository
	storage     *stubStorage
	cache       *infracache.MemoryCache
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		postRepo:    postrepo.NewMemoryRepository(),
		userRepo:    userrepo.NewMemoryRepository(),
		groupRepo:   grouprepo.NewMemoryRepository(),
		followRepo:  followrepo.NewMemoryRepository(),
		commentRepo: commentrepo.NewMemoryRepository(),
		storage:     newStubStorage(),
		cache:       infracache.NewMemoryCache(),
	}
	f.svc = NewPostService(
		f.postRepo, f.userRepo, f.groupRepo, f.followRepo, f.commentRepo,
		f.storage, f.cache,
		config.FeedConfig{PageSize: 10, IndexCacheTTL: 20 * time.Second},
	)
	return f
}

func (f *fixture) addUser(t *testing.T, username string) *user.User {
	t.Helper()
	u := &user.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, f.userRepo.Create(context.Background(), u))
	return u
}

func (f *fixture) addGroup(t *testing.T, title, slug string) *group.Group {
	t.Helper()
	g := &group.Group{ID: uuid.New(), Title: title, Slug: slug, CreatedAt: time.Now().UTC()}
	require.NoError(t, f.groupRepo.Create(context.Background(), g))
	return g
}

func (f *fixture) addPost(t *testing.T, author *user.User, text string, pubDate time.Time, groupID *uuid.UUID) *post.Post {
	t.Helper()
	p := &post.Post{
		ID:       uuid.New(),
		Text:     text,
		PubDate:  pubDate,
		AuthorID: author.ID,
		GroupID:  groupID,
	}
	require.NoError(t, f.postRepo.Create(context.Background(), p))
	return p
}

func TestIndexFeedPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "writer")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 13; i++ {
		f.addPost(t, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute), nil)
	}

	first, err := f.svc.IndexFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, first.Posts, 10)
	assert.Equal(t, 1, first.Meta.Page)
	assert.Equal(t, 2, first.Meta.TotalPages)
	assert.Equal(t, 13, first.Meta.Total)
	assert.True(t, first.Meta.HasNext)
	assert.False(t, first.Meta.HasPrev)
	// Newest first.
	assert.Equal(t, "post 12", first.Posts[0].Text)

	second, err := f.svc.IndexFeed(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, second.Posts, 3)
	assert.False(t, second.Meta.HasNext)
	assert.True(t, second.Meta.HasPrev)
	assert.Equal(t, "post 0", second.Posts[2].Text)

	clamped, err := f.svc.IndexFeed(ctx, 99)
	require.NoError(t, err)
	assert.Equal(t, 2, clamped.Meta.Page)
	assert.Len(t, clamped.Posts, 3)
}

func TestIndexFeedCacheWindow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.cache.SetClock(func() time.Time { return now })

	author := f.addUser(t, "writer")
	p := f.addPost(t, author, "soon gone", now, nil)

	feed, err := f.svc.IndexFeed(ctx, 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)

	require.NoError(t, f.svc.Delete(ctx, p.ID, author.ID))

	// Inside the TTL the cached page still shows the deleted post.
	stale, err := f.svc.IndexFeed(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, stale.Posts, 1)

	// Past the TTL the entry expires and the feed is rebuilt.
	now = now.Add(21 * time.Second)
	fresh, err := f.svc.IndexFeed(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, fresh.Posts)
}

func TestGroupFeed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "writer")
	g := f.addGroup(t, "Go Talk", "go-talk")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.addPost(t, author, "in group", base, &g.ID)
	f.addPost(t, author, "outside", base.Add(time.Minute), nil)

	feed, err := f.svc.GroupFeed(ctx, "go-talk", 1)
	require.NoError(t, err)
	assert.Equal(t, "Go Talk", feed.Group.Title)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "in group", feed.Posts[0].Text)
	require.NotNil(t, feed.Posts[0].Group)
	assert.Equal(t, "go-talk", feed.Posts[0].Group.Slug)

	_, err = f.svc.GroupFeed(ctx, "missing", 1)
	assert.ErrorIs(t, err, group.ErrGroupNotFound)
}

func TestProfileFeedFollowingFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "author")
	viewer := f.addUser(t, "viewer")
	f.addPost(t, author, "hello", time.Now().UTC(), nil)

	anon, err := f.svc.ProfileFeed(ctx, "author", uuid.Nil, 1)
	require.NoError(t, err)
	assert.False(t, anon.Following)
	assert.Equal(t, 1, anon.PostCount)

	notYet, err := f.svc.ProfileFeed(ctx, "author", viewer.ID, 1)
	require.NoError(t, err)
	assert.False(t, notYet.Following)

	require.NoError(t, f.followRepo.Create(ctx, &follow.Follow{
		ID: uuid.New(), UserID: viewer.ID, AuthorID: author.ID, CreatedAt: time.Now().UTC(),
	}))

	following, err := f.svc.ProfileFeed(ctx, "author", viewer.ID, 1)
	require.NoError(t, err)
	assert.True(t, following.Following)

	_, err = f.svc.ProfileFeed(ctx, "nobody", uuid.Nil, 1)
	assert.ErrorIs(t, err, user.ErrUserNotFound)
}

func TestFollowFeedVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	reader := f.addUser(t, "reader")
	followed := f.addUser(t, "followed")
	stranger := f.addUser(t, "stranger")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	f.addPost(t, followed, "from followed", base, nil)
	f.addPost(t, stranger, "from stranger", base.Add(time.Minute), nil)

	require.NoError(t, f.followRepo.Create(ctx, &follow.Follow{
		ID: uuid.New(), UserID: reader.ID, AuthorID: followed.ID, CreatedAt: base,
	}))

	feed, err := f.svc.FollowFeed(ctx, reader.ID, 1)
	require.NoError(t, err)
	require.Len(t, feed.Posts, 1)
	assert.Equal(t, "from followed", feed.Posts[0].Text)

	// Following nobody means an empty feed, not everyone's posts.
	empty, err := f.svc.FollowFeed(ctx, stranger.ID, 1)
	require.NoError(t, err)
	assert.Empty(t, empty.Posts)
}

func TestCreateWithImage(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "writer")

	dto, err := f.svc.Create(ctx, author.ID, post.CreatePostRequest{Text: "with pic"}, &post.ImageUpload{
		Filename:    "cat.png",
		ContentType: "image/png",
		Data:        []byte{1, 2, 3},
	})
	require.NoError(t, err)
	require.NotNil(t, dto.ImageURL)
	assert.Contains(t, *dto.ImageURL, "cat.png")
	assert.Equal(t, 1, f.storage.uploadsN)
}

func TestCreateRejectsBadInput(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "writer")

	_, err := f.svc.Create(ctx, author.ID, post.CreatePostRequest{Text: ""}, nil)
	assert.Error(t, err)

	_, err = f.svc.Create(ctx, author.ID, post.CreatePostRequest{Text: "ok"}, &post.ImageUpload{
		Filename:    "evil.exe",
		ContentType: "application/octet-stream",
		Data:        []byte{1},
	})
	assert.ErrorIs(t, err, post.ErrInvalidImageType)
	assert.Equal(t, 0, f.storage.uploadsN)

	badGroup := uuid.New()
	_, err = f.svc.Create(ctx, author.ID, post.CreatePostRequest{Text: "ok", GroupID: &badGroup}, nil)
	assert.ErrorIs(t, err, post.ErrInvalidGroup)
}

func TestUpdateOnlyByAuthor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "author")
	other := f.addUser(t, "other")
	p := f.addPost(t, author, "original", time.Now().UTC(), nil)

	_, err := f.svc.Update(ctx, p.ID, other.ID, post.UpdatePostRequest{Text: "hijacked"})
	assert.ErrorIs(t, err, post.ErrNotPostAuthor)

	unchanged, err := f.postRepo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "original", unchanged.Text)

	updated, err := f.svc.Update(ctx, p.ID, author.ID, post.UpdatePostRequest{Text: "edited"})
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Text)
}

func TestDeleteCascades(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "author")
	commenter := f.addUser(t, "commenter")

	dto, err := f.svc.Create(ctx, author.ID, post.CreatePostRequest{Text: "doomed"}, &post.ImageUpload{
		Filename:    "pic.jpg",
		ContentType: "image/jpeg",
		Data:        []byte{1},
	})
	require.NoError(t, err)

	require.NoError(t, f.commentRepo.Create(ctx, &comment.Comment{
		ID: uuid.New(), Text: "nice", Created: time.Now().UTC(), PostID: dto.ID, AuthorID: commenter.ID,
	}))

	_, err = f.svc.GetDetail(ctx, dto.ID)
	require.NoError(t, err)

	assert.ErrorIs(t, f.svc.Delete(ctx, dto.ID, commenter.ID), post.ErrNotPostAuthor)
	require.NoError(t, f.svc.Delete(ctx, dto.ID, author.ID))

	_, err = f.postRepo.GetByID(ctx, dto.ID)
	assert.ErrorIs(t, err, post.ErrPostNotFound)

	comments, err := f.commentRepo.ListByPost(ctx, dto.ID)
	require.NoError(t, err)
	assert.Empty(t, comments)

	require.Len(t, f.storage.deleted, 1)
	assert.Contains(t, f.storage.deleted[0], dto.ID.String())
}

func TestGetDetailAuthorPostCount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := f.addUser(t, "author")

	base := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	var last *post.Post
	for i := 0; i < 3; i++ {
		last = f.addPost(t, author, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute), nil)
	}

	detail, err := f.svc.GetDetail(ctx, last.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, detail.AuthorPostCount)
	assert.Equal(t, "author", detail.Post.Author.Username)
}
