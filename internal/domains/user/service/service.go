package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"microblog-backend/internal/domains/comment"
	"microblog-backend/internal/domains/follow"
	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/domains/user"
	"microblog-backend/pkg/jwt"
)

const bcryptCost = 12

type userService struct {
	userRepo    user.Repository
	postRepo    post.Repository
	postService post.Service
	commentRepo comment.Repository
	followRepo  follow.Repository
	jwtManager  *jwt.Manager
}

func NewUserService(
	userRepo user.Repository,
	postRepo post.Repository,
	postService post.Service,
	commentRepo comment.Repository,
	followRepo follow.Repository,
	jwtManager *jwt.Manager,
) user.Service {
	return &userService{
		userRepo:    userRepo,
		postRepo:    postRepo,
		postService: postService,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		jwtManager:  jwtManager,
	}
}

func (s *userService) Register(ctx context.Context, req user.RegisterRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, user.ErrUsernameAlreadyExists
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, user.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &user.User{
		ID:           uuid.New(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	// The unique constraints backstop the existence checks above against
	// concurrent registrations.
	if err := s.userRepo.Create(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, user.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		return nil, user.ErrInvalidCredentials
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(u.ID.String(), u.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refreshToken, err := s.jwtManager.GenerateRefreshToken(u.ID.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &user.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         u.ToDTO(),
	}, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*user.UserDTO, error) {
	u, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

// DeleteAccount cascades in a fixed order: the user's posts go first (taking
// their comments and images with them), then their comments elsewhere, then
// every follow edge on either side, and finally the account row.
func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	if _, err := s.userRepo.FindByID(ctx, userID); err != nil {
		return err
	}

	postIDs, err := s.postRepo.ListIDsByAuthor(ctx, userID)
	if err != nil {
		return err
	}
	for _, postID := range postIDs {
		if err := s.postService.Delete(ctx, postID, userID); err != nil {
			return err
		}
	}

	if err := s.commentRepo.DeleteByAuthor(ctx, userID); err != nil {
		return err
	}
	if err := s.followRepo.DeleteByUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}
