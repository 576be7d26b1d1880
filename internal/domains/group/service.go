package group

import "context"

type Service interface {
	Create(ctx context.Context, req CreateGroupRequest) (*GroupDTO, error)

	GetBySlug(ctx context.Context, slug string) (*GroupDTO, error)

	List(ctx context.Context) ([]*GroupDTO, error)

	// Delete removes a group. Posts published into it survive with their
	// group reference cleared, they are never deleted with the group.
	Delete(ctx context.Context, slug string) error
}
