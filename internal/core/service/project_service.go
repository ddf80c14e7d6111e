package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type projectService struct {
	workspaces ports.WorkspaceRepository
	projects   ports.ProjectRepository
	users      ports.UserRepository
	cascade    *Cascade
	resolver   *authz.Resolver
	guard      *authz.Guard
	logger     zerolog.Logger
}

// NewProjectService returns a ProjectService implementation.
func NewProjectService(
	workspaces ports.WorkspaceRepository,
	projects ports.ProjectRepository,
	users ports.UserRepository,
	cascade *Cascade,
	resolver *authz.Resolver,
	guard *authz.Guard,
	logger zerolog.Logger,
) ports.ProjectService {
	return &projectService{
		workspaces: workspaces,
		projects:   projects,
		users:      users,
		cascade:    cascade,
		resolver:   resolver,
		guard:      guard,
		logger:     logger,
	}
}

// List returns visible projects, optionally limited to one workspace. A
// client naming a workspace it does not own is refused; an employee simply
// sees the projects of that workspace they are assigned to.
func (s *projectService) List(ctx context.Context, caller domain.Caller, workspaceID string) ([]*domain.Project, error) {
	if err := s.guard.Authorize(ctx, caller, authz.ProjectList, authz.Facts{}); err != nil {
		return nil, err
	}

	scope := authz.ListScope(caller, authz.ResourceProject)
	filter := ports.ProjectFilter{WorkspaceID: workspaceID}

	switch scope.Kind {
	case authz.ScopeAll:
	case authz.ScopeClient:
		if workspaceID != "" {
			if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.WorkspaceRead, workspaceID, func(ctx context.Context) (authz.Facts, error) {
				return s.resolver.WorkspaceFacts(ctx, caller, workspaceID)
			}); err != nil {
				return nil, err
			}
		}
		owned, err := s.workspaces.List(ctx, ports.WorkspaceFilter{ClientID: scope.SubjectID})
		if err != nil {
			return nil, err
		}
		filter.WorkspaceIDs = make([]string, 0, len(owned))
		for _, w := range owned {
			filter.WorkspaceIDs = append(filter.WorkspaceIDs, w.ID)
		}
	case authz.ScopeEmployee:
		filter.EmployeeID = scope.SubjectID
	default:
		return []*domain.Project{}, nil
	}

	return s.projects.List(ctx, filter)
}

func (s *projectService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.Project, error) {
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.ProjectRead, id, s.resolve(id))
	if err != nil {
		return nil, err
	}
	return facts.Project, nil
}

// Create adds a project to a workspace. Admins may target any workspace,
// clients only their own.
func (s *projectService) Create(ctx context.Context, caller domain.Caller, input ports.CreateProjectInput) (*domain.Project, error) {
	workspaceID, err := required("workspaceId", input.WorkspaceID)
	if err != nil {
		return nil, err
	}
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.ProjectCreate, workspaceID, func(ctx context.Context) (authz.Facts, error) {
		return s.resolver.WorkspaceFacts(ctx, caller, workspaceID)
	})
	if err != nil {
		return nil, err
	}
	name, err := required("name", input.Name)
	if err != nil {
		return nil, err
	}

	p := &domain.Project{
		ID:                  newID(),
		WorkspaceID:         facts.Workspace.ID,
		Name:                name,
		Description:         *trimmed(&input.Description),
		AssignedEmployeeIDs: []string{},
		CreatedAt:           now(),
	}
	if err := s.projects.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}

	s.logger.Info().Str("project_id", p.ID).Str("workspace_id", p.WorkspaceID).Str("by", caller.ID).Msg("project created")
	return p, nil
}

// Update edits name and description (admin or owning client) and replaces
// the employee assignment set (admin only).
func (s *projectService) Update(ctx context.Context, caller domain.Caller, id string, input ports.UpdateProjectInput) (*domain.Project, error) {
	touches := input.AssignedEmployeeIDs != nil
	facts, err := s.guard.AuthorizeResolved(ctx, caller, authz.ProjectUpdate, id, func(ctx context.Context) (authz.Facts, error) {
		f, err := s.resolver.ProjectFacts(ctx, id)
		f.TouchesAssignments = touches
		return f, err
	})
	if err != nil {
		return nil, err
	}
	if input.Name == nil && input.Description == nil && !touches {
		return nil, domain.ErrNoUpdates
	}

	p := facts.Project
	if input.Name != nil {
		name, err := required("name", *input.Name)
		if err != nil {
			return nil, err
		}
		p.Name = name
	}
	if input.Description != nil {
		p.Description = *trimmed(input.Description)
	}
	if touches {
		ids, err := s.employeeIDs(ctx, *input.AssignedEmployeeIDs)
		if err != nil {
			return nil, err
		}
		p.AssignedEmployeeIDs = ids
	}

	if err := s.projects.Update(ctx, p); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to update project")
		return nil, err
	}
	return p, nil
}

// Delete removes the project with its tasks and their comments.
func (s *projectService) Delete(ctx context.Context, caller domain.Caller, id string) error {
	if _, err := s.guard.AuthorizeResolved(ctx, caller, authz.ProjectDelete, id, s.resolve(id)); err != nil {
		return err
	}
	if err := s.cascade.Projects(ctx, []string{id}); err != nil {
		s.logger.Error().Err(err).Str("project_id", id).Msg("failed to delete project tasks")
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

func (s *projectService) resolve(id string) authz.ResolveFunc {
	return func(ctx context.Context) (authz.Facts, error) {
		return s.resolver.ProjectFacts(ctx, id)
	}
}

// employeeIDs de-duplicates ids and checks each names an employee.
func (s *projectService) employeeIDs(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		u, err := s.users.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, domain.InvalidInput("assignedEmployeeIds contains an unknown user: " + id)
			}
			return nil, err
		}
		if u.Role != domain.RoleEmployee {
			return nil, domain.InvalidInput("assignedEmployeeIds must only contain employees: " + id)
		}
		out = append(out, id)
	}
	return out, nil
}
