package ports

import (
	"context"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// UpdateUserInput carries the admin-only identity mutations.
type UpdateUserInput struct {
	Role     *domain.Role
	Disabled *bool
}

type UserService interface {
	List(ctx context.Context, caller domain.Caller) ([]*domain.User, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.User, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdateUserInput) (*domain.User, error)
}
