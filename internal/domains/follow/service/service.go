package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/follow"
	"microblog-backend/internal/domains/user"
)

type followService struct {
	followRepo follow.Repository
	userRepo   user.Repository
}

func NewFollowService(followRepo follow.Repository, userRepo user.Repository) follow.Service {
	return &followService{followRepo: followRepo, userRepo: userRepo}
}

func (s *followService) Follow(ctx context.Context, followerID uuid.UUID, username string) error {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}

	// Following yourself is quietly ignored.
	if author.ID == followerID {
		return nil
	}

	err = s.followRepo.Create(ctx, &follow.Follow{
		ID:        uuid.New(),
		UserID:    followerID,
		AuthorID:  author.ID,
		CreatedAt: time.Now().UTC(),
	})
	// An existing edge means the desired state already holds, including
	// when a concurrent request won the insert race.
	if errors.Is(err, follow.ErrAlreadyFollowing) {
		return nil
	}
	return err
}

func (s *followService) Unfollow(ctx context.Context, followerID uuid.UUID, username string) error {
	author, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return err
	}
	return s.followRepo.Delete(ctx, followerID, author.ID)
}

func (s *followService) IsFollowing(ctx context.Context, viewerID, authorID uuid.UUID) (bool, error) {
	if viewerID == uuid.Nil {
		return false, nil
	}
	return s.followRepo.Exists(ctx, viewerID, authorID)
}
