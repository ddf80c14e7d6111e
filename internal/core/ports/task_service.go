package ports

import (
	"context"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
}

// UpdateTaskInput holds task mutations. For AssignedTo and DueDate a non-nil
// pointer to the zero value clears the field.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssignedTo  *string
	DueDate     *time.Time
	Order       *int
}

type TaskService interface {
	List(ctx context.Context, caller domain.Caller, projectID string) ([]*domain.Task, error)
	Get(ctx context.Context, caller domain.Caller, id string) (*domain.Task, error)
	Create(ctx context.Context, caller domain.Caller, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, caller domain.Caller, id string, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, caller domain.Caller, id string) error
}

type CommentService interface {
	List(ctx context.Context, caller domain.Caller, taskID string) ([]*domain.Comment, error)
	Create(ctx context.Context, caller domain.Caller, taskID, content string) (*domain.Comment, error)
}
