package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/comment"
	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/domains/user"
)

type commentService struct {
	commentRepo comment.Repository
	postRepo    post.Repository
	userRepo    user.Repository
}

func NewCommentService(commentRepo comment.Repository, postRepo post.Repository, userRepo user.Repository) comment.Service {
	return &commentService{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
	}
}

func (s *commentService) Create(ctx context.Context, postID, authorID uuid.UUID, req comment.CreateCommentRequest) (*comment.CommentDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The target post must exist; commenting on a deleted post is a 404.
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}

	author, err := s.userRepo.FindByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	c := &comment.Comment{
		ID:       uuid.New(),
		Text:     req.Text,
		Created:  time.Now().UTC(),
		PostID:   postID,
		AuthorID: authorID,
	}
	if err := s.commentRepo.Create(ctx, c); err != nil {
		return nil, err
	}

	return &comment.CommentDTO{
		ID:      c.ID,
		Text:    c.Text,
		Created: c.Created,
		PostID:  c.PostID,
		Author:  comment.AuthorInfo{ID: author.ID, Username: author.Username},
	}, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID uuid.UUID) ([]*comment.CommentDTO, error) {
	comments, err := s.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	seen := make(map[uuid.UUID]bool)
	for _, c := range comments {
		if !seen[c.AuthorID] {
			seen[c.AuthorID] = true
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}

	authors := make(map[uuid.UUID]comment.AuthorInfo, len(authorIDs))
	if len(authorIDs) > 0 {
		users, err := s.userRepo.ListByIDs(ctx, authorIDs)
		if err != nil {
			return nil, err
		}
		for _, u := range users {
			authors[u.ID] = comment.AuthorInfo{ID: u.ID, Username: u.Username}
		}
	}

	dtos := make([]*comment.CommentDTO, 0, len(comments))
	for _, c := range comments {
		dtos = append(dtos, &comment.CommentDTO{
			ID:      c.ID,
			Text:    c.Text,
			Created: c.Created,
			PostID:  c.PostID,
			Author:  authors[c.AuthorID],
		})
	}
	return dtos, nil
}
