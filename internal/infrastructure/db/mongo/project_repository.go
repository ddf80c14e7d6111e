package mongo

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

const collectionProjects = "projects"

type ProjectRepository struct {
	col *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{col: db.Collection(collectionProjects)}
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return insertOne(ctx, r.col, withAssignments(p))
}

func (r *ProjectRepository) FindByID(ctx context.Context, id string) (*domain.Project, error) {
	return findOne[domain.Project](ctx, r.col, idFilter(id), domain.ErrProjectNotFound)
}

// List returns matching projects newest first.
func (r *ProjectRepository) List(ctx context.Context, f ports.ProjectFilter) ([]*domain.Project, error) {
	return findAll[domain.Project](ctx, r.col, projectFilter(f), newestFirst())
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return replaceByID(ctx, r.col, p.ID, withAssignments(p), domain.ErrProjectNotFound)
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.col, id, domain.ErrProjectNotFound)
}

func (r *ProjectRepository) IDsByWorkspace(ctx context.Context, workspaceID string) ([]string, error) {
	ids, err := distinctStrings(ctx, r.col, "_id", bson.M{"workspace_id": workspaceID})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ProjectRepository) DeleteByWorkspace(ctx context.Context, workspaceID string) error {
	return deleteMany(ctx, r.col, bson.M{"workspace_id": workspaceID})
}

func (r *ProjectRepository) WorkspaceIDsForEmployee(ctx context.Context, employeeID string) ([]string, error) {
	ids, err := distinctStrings(ctx, r.col, "workspace_id", bson.M{"assigned_employee_ids": employeeID})
	if err != nil {
		return nil, err
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ProjectRepository) HasAssignmentInWorkspace(ctx context.Context, workspaceID, employeeID string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx,
		bson.M{"workspace_id": workspaceID, "assigned_employee_ids": employeeID},
		options.Count().SetLimit(1))
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// withAssignments stores an empty array instead of null so array queries
// behave the same on every document.
func withAssignments(p *domain.Project) *domain.Project {
	if p.AssignedEmployeeIDs != nil {
		return p
	}
	doc := *p
	doc.AssignedEmployeeIDs = []string{}
	return &doc
}
