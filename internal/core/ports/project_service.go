package ports

import (
	"context"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

type CreateProjectInput struct {
	WorkspaceID string
	Name        string
	Description string
}

// UpdateProjectInput holds project mutations. AssignedEmployeeIDs, when
// non-nil, replaces the whole assignment set and is reserved for admins.
type UpdateProjectInput struct {
	Name                *string
	Description         *string
	AssignedEmployeeIDs *[]string
}

type ProjectService interface {
	// List returns the projects visible to the caller, optionally limited to
	// one workspace.
	List(ctx context.Context, caller domain.Caller, workspaceID string) ([]*domain.Project, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Project, error)
	Create(ctx context.Context, caller domain.Caller, input CreateProjectInput) (*domain.Project, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}
