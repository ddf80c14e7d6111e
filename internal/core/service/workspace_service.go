package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

// Cascade removes a set of projects together with their tasks and comments.
type Cascade struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	comments ports.CommentRepository
}

func NewCascade(projects ports.ProjectRepository, tasks ports.TaskRepository, comments ports.CommentRepository) *Cascade {
	return &Cascade{projects: projects, tasks: tasks, comments: comments}
}

// Projects deletes the comments, then the tasks of projectIDs. The project
// rows themselves are left to the caller.
func (c *Cascade) Projects(ctx context.Context, projectIDs []string) error {
	if len(projectIDs) == 0 {
		return nil
	}
	taskIDs, err := c.tasks.IDsByProjects(ctx, projectIDs)
	if err != nil {
		return err
	}
	if len(taskIDs) > 0 {
		if err := c.comments.DeleteByTasks(ctx, taskIDs); err != nil {
			return err
		}
	}
	return c.tasks.DeleteByProjects(ctx, projectIDs)
}

type workspaceService struct {
	workspaces ports.WorkspaceRepository
	projects   ports.ProjectRepository
	users      ports.UserRepository
	cascade    *Cascade
	resolver   *authz.Resolver
	guard      *authz.Guard
	logger     zerolog.Logger
}

// NewWorkspaceService returns a WorkspaceService implementation.
func NewWorkspaceService(
	workspaces ports.WorkspaceRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	cascade *Cascade,
	resolver *authz.Resolver,
	guard *authz.Guard,
	logger zerolog.Logger,
) ports.WorkspaceService {
	return &workspaceService{
		workspaces: workspaces,
		projects:   projects,
		users:      users,
		cascade:    cascade,
		resolver:   resolver,
		guard:      guard,
		logger:     logger,
	}
}

// List returns every workspace for admins, owned workspaces for clients and,
// for employees, the workspaces holding at least one of their projects.
func (s *workspaceService) List(ctx context.Context, caller domain.Caller) ([]*domain.Workspace, error) {
	if err := s.guard.Authorize(ctx, caller, authz.WorkspaceList, authz.Facts{}); err != nil {
		return nil, err
	}

	scope := authz.ListScope(caller, authz.ResourceWorkspace)
	switch scope.Kind {
	case authz.ScopeAll:
		return s.workspaces.List(ctx, ports.WorkspaceFilter{})
	case authz.ScopeClient:
		return s.workspaces.List(ctx, ports.WorkspaceFilter{ClientID: scope.SubjectID})
	case authz.ScopeEmployee:
		ids, err := s.projects.WorkspaceIDsForEmployee(ctx, scope.SubjectID)
		if err != nil {
			return nil, err
		}
		return s.workspaces.List(ctx, ports.WorkspaceFilter{IDs: ids})
	default:
		return []*domain.Workspace{}, nil
	}
}

func (s *workspaceService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Workspace, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.WorkspaceRead, id, s.resolve(caller, id))
	if err != nil {
		return nil, err
	}
	return facts.Workspace, nil
}

func (s *workspaceService) Create(ctx context.Context, caller domain.Caller, input ports.CreateWorkspaceInput) (*domain.Workspace, error) {
	if err := s.guard.Authorize(ctx, caller, authz.WorkspaceCreate, authz.Facts{}); err != nil {
		return nil, err
	}
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}
	clientID, err := required("clientId", input.ClientID)
	if err != nil {
		return nil, err
	}

	client, err := s.users.FindByID(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.InvalidInput("clientId must reference an existing client")
		}
		return nil, err
	}
	if client.Role != domain.RoleClient {
		return nil, domain.InvalidInput("clientId must reference a user with the client role")
	}

	ws := &domain.Workspace{ID: newID(), Name: name, ClientID: clientID, CreatedAt: now()}
	if err := s.workspaces.Create(ctx, ws); err != nil {
		s.logger.Error().Err(err).Msg("failed to create workspace")
		return nil, err
	}

	s.logger.Info().Str("workspace_id", ws.ID).Str("client_id", clientID).Msg("workspace created")
	return ws, nil
}

func (s *workspaceService) Rename(ctx context.Context, caller domain.Caller, id, name string) (*domain.Workspace, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.WorkspaceUpdate, id, s.resolve(caller, id))
	if err != nil {
		return nil, err
	}
	name, err = required("name", name)
	if err != nil {
		return nil, err
	}

	ws := facts.Workspace
	ws.Name = name
	if err := s.workspaces.Update(ctx, ws); err != nil {
		s.logger.Error().Err(err).Str("workspace_id", id).Msg("failed to update workspace")
		return nil, err
	}
	return ws, nil
}

// Delete removes the workspace and everything beneath it.
func (s *workspaceService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.WorkspaceDelete, id, s.resolve(caller, id)); err != nil {
		return err
	}

	projectIDs, err := s.projects.IDsByWorkspace(ctx, id)
	if err != nil {
		return err
	}
	if err := s.cascade.Projects(ctx, projectIDs); err != nil {
		s.logger.Error().Err(err).Str("workspace_id", id).Msg("failed to delete workspace tasks")
		return err
	}
	if err := s.projects.DeleteByWorkspace(ctx, id); err != nil {
		return err
	}
	if err := s.workspaces.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("workspace_id", id).Int("projects", len(projectIDs)).Msg("workspace deleted")
	return nil
}

func (s *workspaceService) resolve(caller domain.Caller, id string) authz.ResolveFunc {
	return func(ctx context.Context) (authz.Facts, error) {
		return s.resolver.WorkspaceFacts(ctx, caller, id)
	}
}
