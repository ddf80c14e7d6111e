package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type taskService struct {
	tasks    ports.TaskRepository
	comments ports.CommentRepository
	users    ports.UserRepository
	resolver *authz.Resolver
	guard    *authz.Guard
	logger   zerolog.Logger
}

// NewTaskService returns a TaskService implementation.
func NewTaskService(
	tasks ports.TaskRepository,
	comments ports.CommentRepository,
	users ports.UserRepository,
	resolver *authz.Resolver,
	guard *authz.Guard,
	logger zerolog.Logger,
) ports.TaskService {
	return &taskService{
		tasks:    tasks,
		comments: comments,
		users:    users,
		resolver: resolver,
		guard:    guard,
		logger:   logger,
	}
}

// List returns a project's tasks ordered by position, newest first on ties.
func (s *taskService) List(ctx context.Context, caller domain.Caller, projectID string) ([]*domain.Task, error) {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.TaskList, projectID, s.resolveProject(projectID)); err != nil {
		return nil, err
	}
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *taskService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Task, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.TaskRead, id, s.resolveTask(id))
	if err != nil {
		return nil, err
	}
	return facts.Task, nil
}

// Create appends a not-started task at the end of the project.
func (s *taskService) Create(ctx context.Context, caller domain.Caller, input ports.CreateTaskInput) (*domain.Task, error) {
	projectID, err := required("projectId", input.ProjectID)
	if err != nil {
		return nil, err
	}
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.TaskCreate, projectID, s.resolveProject(projectID)); err != nil {
		return nil, err
	}
	title, err := required("title", input.Title)
	if err != nil {
		return nil, err
	}

	maxOrder, err := s.tasks.MaxOrder(ctx, projectID)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		ID:          newID(),
		ProjectID:   projectID,
		Title:       title,
		Description: *trimmed(&input.Description),
		Status:      domain.TaskNotStarted,
		Order:       maxOrder + 1,
		CreatedAt:   now(),
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		s.logger.Error().Err(err).Msg("failed to create task")
		return nil, err
	}

	s.logger.Info().Str("task_id", t.ID).Str("project_id", projectID).Msg("task created")
	return t, nil
}

// Update edits task fields. Admins and employees assigned to the project may
// do so; clients only read and comment.
func (s *taskService) Update(ctx context.Context, caller domain.Caller, id string, input ports.UpdateTaskInput) (*domain.Task, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.TaskUpdate, id, s.resolveTask(id))
	if err != nil {
		return nil, err
	}
	if input.Title == nil && input.Description == nil && input.Status == nil &&
		input.AssignedTo == nil && input.DueDate == nil && input.Order == nil {
		return nil, domain.ErrNoUpdates
	}

	t := facts.Task
	if input.Title != nil {
		title, err := required("title", *input.Title)
		if err != nil {
			return nil, err
		}
		t.Title = title
	}
	if input.Description != nil {
		t.Description = *trimmed(input.Description)
	}
	if input.Status != nil {
		if !input.Status.Valid() {
			return nil, domain.ErrInvalidStatus
		}
		t.Status = *input.Status
	}
	if input.AssignedTo != nil {
		if *input.AssignedTo == "" {
			t.AssignedTo = nil
		} else {
			if err := s.checkUser(ctx, *input.AssignedTo); err != nil {
				return nil, err
			}
			assignee := *input.AssignedTo
			t.AssignedTo = &assignee
		}
	}
	if input.DueDate != nil {
		if input.DueDate.IsZero() {
			t.DueDate = nil
		} else {
			due := input.DueDate.UTC()
			t.DueDate = &due
		}
	}
	if input.Order != nil {
		t.Order = *input.Order
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		s.logger.Error().Err(err).Str("task_id", id).Msg("failed to update task")
		return nil, err
	}
	return t, nil
}

// Delete removes the task and its comments.
func (s *taskService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.TaskDelete, id, s.resolveTask(id)); err != nil {
		return err
	}
	if err := s.comments.DeleteByTasks(ctx, []string{id}); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("task_id", id).Msg("task deleted")
	return nil
}

func (s *taskService) checkUser(ctx context.Context, id string) error {
	if _, err := s.users.FindByID(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.InvalidInput("assignedTo must reference an existing user")
		}
		return err
	}
	return nil
}

func (s *taskService) resolveProject(id string) authz.ResolveFunc {
	return func(ctx context.Context) (authz.Facts, error) { return s.resolver.ProjectFacts(ctx, id) }
}

func (s *taskService) resolveTask(id string) authz.ResolveFunc {
	return func(ctx context.Context) (authz.Facts, error) { return s.resolver.TaskFacts(ctx, id) }
}

type commentService struct {
	comments ports.CommentRepository
	users    ports.UserRepository
	resolver *authz.Resolver
	guard    *authz.Guard
	logger   zerolog.Logger
}

// NewCommentService returns a CommentService implementation.
func NewCommentService(
	comments ports.CommentRepository,
	users ports.UserRepository,
	resolver *authz.Resolver,
	guard *authz.Guard,
	logger zerolog.Logger,
) ports.CommentService {
	return &commentService{comments: comments, users: users, resolver: resolver, guard: guard, logger: logger}
}

// List returns a task's comments oldest first.
func (s *commentService) List(ctx context.Context, caller domain.Caller, taskID string) ([]*domain.Comment, error) {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.CommentList, taskID, s.resolveTask(taskID)); err != nil {
		return nil, err
	}
	return s.comments.ListByTask(ctx, taskID)
}

// Create adds a comment. Anyone who can see the task may comment on it.
func (s *commentService) Create(ctx context.Context, caller domain.Caller, taskID, content string) (*domain.Comment, error) {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.CommentCreate, taskID, s.resolveTask(taskID)); err != nil {
		return nil, err
	}
	content, err := required("content", content)
	if err != nil {
		return nil, err
	}

	authorName := ""
	if author, err := s.users.FindByID(ctx, caller.ID); err == nil {
		authorName = author.Name
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	c := &domain.Comment{
		ID:         newID(),
		TaskID:     taskID,
		AuthorID:   caller.ID,
		AuthorName: authorName,
		Content:    content,
		CreatedAt:  now(),
	}
	if err := s.comments.Create(ctx, c); err != nil {
		s.logger.Error().Err(err).Msg("failed to create comment")
		return nil, err
	}
	return c, nil
}

func (s *commentService) resolveTask(id string) authz.ResolveFunc {
	return func(ctx context.Context) (authz.Facts, error) { return s.resolver.TaskFacts(ctx, id) }
}
