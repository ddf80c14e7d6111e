package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

const collectionWorkspaces = "workspaces"

type WorkspaceRepository struct {
	col *mongo.Collection
}

func NewWorkspaceRepository(db *mongo.Database) *WorkspaceRepository {
	return &WorkspaceRepository{col: db.Collection(collectionWorkspaces)}
}

func (r *WorkspaceRepository) Create(ctx context.Context, w *domain.Workspace) error {
	return insertOne(ctx, r.col, w)
}

func (r *WorkspaceRepository) FindByID(ctx context.Context, id string) (*domain.Workspace, error) {
	return findOne[domain.Workspace](ctx, r.col, idFilter(id), domain.ErrWorkspaceNotFound)
}

// List returns matching workspaces newest first.
func (r *WorkspaceRepository) List(ctx context.Context, f ports.WorkspaceFilter) ([]*domain.Workspace, error) {
	return findAll[domain.Workspace](ctx, r.col, workspaceFilter(f), newestFirst())
}

func (r *WorkspaceRepository) Update(ctx context.Context, w *domain.Workspace) error {
	return replaceByID(ctx, r.col, w.ID, w, domain.ErrWorkspaceNotFound)
}

func (r *WorkspaceRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrWorkspaceNotFound)
}
