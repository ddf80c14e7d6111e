package ports

import (
	"context"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

type CreateWorkspaceInput struct {
	Name     string
	ClientID string
}

type WorkspaceService interface {
	List(ctx context.Context, caller domain.Caller) ([]*domain.Workspace, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Workspace, error)
	Create(ctx context.Context, caller domain.Caller, input CreateWorkspaceInput) (*domain.Workspace, error)
	Rename(ctx context.Context, caller domain.Caller, id, name string) (*domain.Workspace, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}
