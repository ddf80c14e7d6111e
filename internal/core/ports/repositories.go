package ports

import (
	"context"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// UserRepository is the credential store. Lookups by email are
// case-insensitive; callers pass domain.NormalizeEmail'd values.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, user *domain.User) error
}

// WorkspaceFilter narrows a workspace listing. A nil IDs slice means "no
// restriction"; an empty non-nil slice matches nothing.
type WorkspaceFilter struct {
	ClientID string
	IDs      []string
}

type WorkspaceRepository interface {
	Create(ctx context.Context, w *domain.Workspace) error
	FindByID(ctx context.Context, id string) (*domain.Workspace, error)
	List(ctx context.Context, filter WorkspaceFilter) ([]*domain.Workspace, error)
	Update(ctx context.Context, w *domain.Workspace) error
	Delete(ctx context.Context, id string) error
}

// ProjectFilter narrows a project listing. WorkspaceIDs follows the same
// nil/empty convention as WorkspaceFilter.IDs.
type ProjectFilter struct {
	WorkspaceID  string
	WorkspaceIDs []string
	EmployeeID   string
}

type ProjectRepository interface {
	Create(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context, filter ProjectFilter) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
	// IDsByWorkspace returns the ids of every project inside a workspace.
	IDsByWorkspace(ctx context.Context, workspaceID string) ([]string, error)
	DeleteByWorkspace(ctx context.Context, workspaceID string) error
	// WorkspaceIDsForEmployee returns the distinct workspaces in which the
	// employee is assigned to at least one project.
	WorkspaceIDsForEmployee(ctx context.Context, employeeID string) ([]string, error)
	HasAssignmentInWorkspace(ctx context.Context, workspaceID, employeeID string) (bool, error)
}

type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, id string) (*domain.Task, error)
	// ListByProject returns tasks ordered by Order ascending, newest first on ties.
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	// MaxOrder returns the highest order in the project, 0 when it is empty.
	MaxOrder(ctx context.Context, projectID string) (int, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id string) error
	IDsByProjects(ctx context.Context, projectIDs []string) ([]string, error)
	DeleteByProjects(ctx context.Context, projectIDs []string) error
}

type CommentRepository interface {
	Create(ctx context.Context, c *domain.Comment) error
	// ListByTask returns comments oldest first.
	ListByTask(ctx context.Context, taskID string) ([]*domain.Comment, error)
	DeleteByTasks(ctx context.Context, taskIDs []string) error
}

// PaymentFilter narrows a payment listing; an empty EmployeeID lists all rows.
type PaymentFilter struct {
	EmployeeID string
}

type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) error
	FindByID(ctx context.Context, id string) (*domain.Payment, error)
	List(ctx context.Context, filter PaymentFilter) ([]*domain.Payment, error)
	Update(ctx context.Context, p *domain.Payment) error
	Delete(ctx context.Context, id string) error
}

type RevenueRepository interface {
	Create(ctx context.Context, r *domain.Revenue) error
	FindByID(ctx context.Context, id string) (*domain.Revenue, error)
	List(ctx context.Context) ([]*domain.Revenue, error)
	Update(ctx context.Context, r *domain.Revenue) error
	Delete(ctx context.Context, id string) error
}

// AuditRepository persists audit events to the audit trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
