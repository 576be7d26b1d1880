package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"microblog-backend/internal/domains/group"
	"microblog-backend/internal/domains/post"
	"microblog-backend/internal/shared/utils"
)

type groupService struct {
	groupRepo group.Repository
	postRepo  post.Repository
}

func NewGroupService(groupRepo group.Repository, postRepo post.Repository) group.Service {
	return &groupService{groupRepo: groupRepo, postRepo: postRepo}
}

func (s *groupService) Create(ctx context.Context, req group.CreateGroupRequest) (*group.GroupDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	slug := req.Slug
	if slug == "" {
		slug = utils.GenerateSlug(req.Title)
	}

	g := &group.Group{
		ID:          uuid.New(),
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.groupRepo.Create(ctx, g); err != nil {
		return nil, err
	}

	dto := g.ToDTO()
	return &dto, nil
}

func (s *groupService) GetBySlug(ctx context.Context, slug string) (*group.GroupDTO, error) {
	g, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	dto := g.ToDTO()
	return &dto, nil
}

func (s *groupService) List(ctx context.Context) ([]*group.GroupDTO, error) {
	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]*group.GroupDTO, 0, len(groups))
	for _, g := range groups {
		dto := g.ToDTO()
		dtos = append(dtos, &dto)
	}
	return dtos, nil
}

// Delete detaches the group's posts before removing the group itself, so
// posts published into it keep living without a group.
func (s *groupService) Delete(ctx context.Context, slug string) error {
	g, err := s.groupRepo.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if err := s.postRepo.ClearGroup(ctx, g.ID); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, g.ID)
}
