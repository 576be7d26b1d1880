package service

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"

	"microblog-backend/internal/config"
	"microblog-backend/internal/domains/comment"
	"microblog-backend/internal/domains/follow"
	"microblog-backend/internal/domains/group"
	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/domains/user"
	"microblog-backend/internal/shared/pagination"
	"microblog-backend/pkg/cache"
	"microblog-backend/pkg/logger"
)

// allowedImageTypes is the upload whitelist. Anything else is rejected
// before the object store is touched.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

type postService struct {
	postRepo    post.Repository
	userRepo    user.Repository
	groupRepo   group.Repository
	followRepo  follow.Repository
	commentRepo comment.Repository
	storage     post.ImageStorage
	cache       cache.Cache
	cfg         config.FeedConfig
}

func NewPostService(
	postRepo post.Repository,
	userRepo user.Repository,
	groupRepo group.Repository,
	followRepo follow.Repository,
	commentRepo comment.Repository,
	storage post.ImageStorage,
	cacheStore cache.Cache,
	cfg config.FeedConfig,
) post.Service {
	return &postService{
		postRepo:    postRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
		followRepo:  followRepo,
		commentRepo: commentRepo,
		storage:     storage,
		cache:       cacheStore,
		cfg:         cfg,
	}
}

func indexCacheKey(page int) string {
	return fmt.Sprintf("feed:index:page:%d", page)
}

// IndexFeed serves the global feed through the cache with a short TTL.
// Cache failures degrade to a direct read; they never fail the request.
func (s *postService) IndexFeed(ctx context.Context, page int) (*post.Feed, error) {
	key := indexCacheKey(page)

	var cached post.Feed
	found, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		logger.Warn("index feed cache read failed", err)
	}
	if found {
		return &cached, nil
	}

	feed, err := s.buildFeed(ctx,
		func(ctx context.Context) (int, error) { return s.postRepo.CountAll(ctx) },
		func(ctx context.Context, limit, offset int) ([]*post.Post, error) {
			return s.postRepo.ListAll(ctx, limit, offset)
		},
		page,
	)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, feed, s.cfg.IndexCacheTTL); err != nil {
		logger.Warn("index feed cache write failed", err)
	}
	return feed, nil
}

func (s *postService) GroupFeed(ctx context.Context, slug string, page int) (*post.GroupFeed, error) {
	grp, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	feed, err := s.buildFeed(ctx,
		func(ctx context.Context) (int, error) { return s.postRepo.CountByGroup(ctx, grp.ID) },
		func(ctx context.Context, limit, offset int) ([]*post.Post, error) {
			return s.postRepo.ListByGroup(ctx, grp.ID, limit, offset)
		},
		page,
	)
	if err != nil {
		return nil, err
	}

	return &post.GroupFeed{
		Group: post.GroupInfo{ID: grp.ID, Title: grp.Title, Slug: grp.Slug},
		Feed:  *feed,
	}, nil
}

func (s *postService) ProfileFeed(ctx context.Context, username string, viewerID uuid.UUID, page int) (*post.Profile, error) {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	feed, err := s.buildFeed(ctx,
		func(ctx context.Context) (int, error) { return s.postRepo.CountByAuthor(ctx, author.ID) },
		func(ctx context.Context, limit, offset int) ([]*post.Post, error) {
			return s.postRepo.ListByAuthor(ctx, author.ID, limit, offset)
		},
		page,
	)
	if err != nil {
		return nil, err
	}

	following := false
	if viewerID != uuid.Nil && viewerID != author.ID {
		following, err = s.followRepo.Exists(ctx, viewerID, author.ID)
		if err != nil {
			return nil, err
		}
	}

	return &post.Profile{
		Author:    post.AuthorInfo{ID: author.ID, Username: author.Username},
		PostCount: feed.Meta.Total,
		Following: following,
		Feed:      *feed,
	}, nil
}

func (s *postService) FollowFeed(ctx context.Context, userID uuid.UUID, page int) (*post.Feed, error) {
	authorIDs, err := s.followRepo.ListAuthorIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	return s.buildFeed(ctx,
		func(ctx context.Context) (int, error) { return s.postRepo.CountByAuthors(ctx, authorIDs) },
		func(ctx context.Context, limit, offset int) ([]*post.Post, error) {
			return s.postRepo.ListByAuthors(ctx, authorIDs, limit, offset)
		},
		page,
	)
}

func (s *postService) GetDetail(ctx context.Context, id uuid.UUID) (*post.Detail, error) {
	p, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	dtos, err := s.toDTOs(ctx, []*post.Post{p})
	if err != nil {
		return nil, err
	}

	authorPostCount, err := s.postRepo.CountByAuthor(ctx, p.AuthorID)
	if err != nil {
		return nil, err
	}

	return &post.Detail{Post: *dtos[0], AuthorPostCount: authorPostCount}, nil
}

func (s *postService) Create(ctx context.Context, authorID uuid.UUID, req post.CreatePostRequest, image *post.ImageUpload) (*post.PostDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, post.ErrInvalidGroup
		}
	}

	p := &post.Post{
		ID:       uuid.New(),
		Text:     req.Text,
		PubDate:  time.Now().UTC(),
		AuthorID: authorID,
		GroupID:  req.GroupID,
	}

	if image != nil {
		if !allowedImageTypes[image.ContentType] {
			return nil, post.ErrInvalidImageType
		}
		key := path.Join("posts", p.ID.String(), image.Filename)
		url, err := s.storage.Upload(ctx, key, image.Data, image.ContentType)
		if err != nil {
			return nil, fmt.Errorf("failed to upload post image: %w", err)
		}
		p.ImageURL = &url
	}

	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	dtos, err := s.toDTOs(ctx, []*post.Post{p})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

func (s *postService) Update(ctx context.Context, postID, actorID uuid.UUID, req post.UpdatePostRequest) (*post.PostDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p.AuthorID != actorID {
		return nil, post.ErrNotPostAuthor
	}

	if req.GroupID != nil {
		if _, err := s.groupRepo.GetByID(ctx, *req.GroupID); err != nil {
			return nil, post.ErrInvalidGroup
		}
	}

	p.Text = req.Text
	p.GroupID = req.GroupID

	if err := s.postRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	dtos, err := s.toDTOs(ctx, []*post.Post{p})
	if err != nil {
		return nil, err
	}
	return dtos[0], nil
}

// Delete removes the post, its comments and its stored image. The index
// cache is deliberately left alone: the entry expires within the TTL.
func (s *postService) Delete(ctx context.Context, postID, actorID uuid.UUID) error {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if p.AuthorID != actorID {
		return post.ErrNotPostAuthor
	}
	return s.remove(ctx, p)
}

func (s *postService) remove(ctx context.Context, p *post.Post) error {
	if err := s.commentRepo.DeleteByPost(ctx, p.ID); err != nil {
		return err
	}
	if err := s.postRepo.Delete(ctx, p.ID); err != nil {
		return err
	}
	if p.ImageURL != nil {
		prefix := path.Join("posts", p.ID.String())
		if err := s.storage.DeleteByPrefix(ctx, prefix); err != nil {
			logger.Warn("failed to delete post image", err)
		}
	}
	return nil
}

type countFunc func(ctx context.Context) (int, error)
type listFunc func(ctx context.Context, limit, offset int) ([]*post.Post, error)

// buildFeed is the shared page pipeline: count, clamp the page against the
// total, fetch one page, resolve author and group references in bulk.
func (s *postService) buildFeed(ctx context.Context, count countFunc, list listFunc, page int) (*post.Feed, error) {
	total, err := count(ctx)
	if err != nil {
		return nil, err
	}

	params := pagination.New(page, s.cfg.PageSize, total)

	posts, err := list(ctx, params.Limit, params.Offset())
	if err != nil {
		return nil, err
	}

	dtos, err := s.toDTOs(ctx, posts)
	if err != nil {
		return nil, err
	}

	return &post.Feed{
		Posts: dtos,
		Meta: post.FeedMeta{
			Page:       params.Page,
			Limit:      params.Limit,
			Total:      params.Total,
			TotalPages: params.TotalPages,
			HasNext:    params.HasNext(),
			HasPrev:    params.HasPrev(),
		},
	}, nil
}

// toDTOs resolves author and group references with one bulk lookup each
// instead of a query per post.
func (s *postService) toDTOs(ctx context.Context, posts []*post.Post) ([]*post.PostDTO, error) {
	authorIDs := make([]uuid.UUID, 0, len(posts))
	groupIDs := make([]uuid.UUID, 0)
	seenAuthors := make(map[uuid.UUID]bool)
	seenGroups := make(map[uuid.UUID]bool)

	for _, p := range posts {
		if !seenAuthors[p.AuthorID] {
			seenAuthors[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
		if p.GroupID != nil && !seenGroups[*p.GroupID] {
			seenGroups[*p.GroupID] = true
			groupIDs = append(groupIDs, *p.GroupID)
		}
	}

	authors := make(map[uuid.UUID]post.AuthorInfo, len(authorIDs))
	if len(authorIDs) > 0 {
		users, err := s.userRepo.ListByIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.ID] = post.AuthorInfo{ID: u.ID, Username: u.Username}
		}
	}

	groups := make(map[uuid.UUID]post.GroupInfo, len(groupIDs))
	if len(groupIDs) > 0 {
		list, err := s.groupRepo.ListByIDs(ctx, groupIDs)
		if err != nil {
			return nil, err
		}
		for _, g := range list {
			groups[g.ID] = post.GroupInfo{ID: g.ID, Title: g.Title, Slug: g.Slug}
		}
	}

	dtos := make([]*post.PostDTO, 0, len(posts))
	for _, p := range posts {
		dto := &post.PostDTO{
			ID:       p.ID,
			Text:     p.Text,
			PubDate:  p.PubDate,
			Author:   authors[p.AuthorID],
			ImageURL: p.ImageURL,
		}
		if p.GroupID != nil {
			if info, ok := groups[*p.GroupID]; ok {
				dto.Group = &info
			}
		}
		dtos = append(dtos, dto)
	}
	return dtos, nil
}
