package authz

import (
	"context"
	"errors"
	"fmt"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

// ProjectContext is a project together with its workspace.
type ProjectContext struct {
	Project   *domain.Project
	Workspace *domain.Workspace
}

// TaskContext is a task together with its project and workspace.
type TaskContext struct {
	Task      *domain.Task
	Project   *domain.Project
	Workspace *domain.Workspace
}

// Resolver loads a target and walks its ancestry. It never mutates state and
// never decides; a missing link fails with an error wrapping
// domain.ErrNotFound.
type Resolver struct {
	workspaces ports.WorkspaceRepository
	projects   ports.ProjectRepository
	tasks      ports.TaskRepository
}

func NewResolver(workspaces ports.WorkspaceRepository, projects ports.ProjectRepository, tasks ports.TaskRepository) *Resolver {
	return &Resolver{workspaces: workspaces, projects: projects, tasks: tasks}
}

func (r *Resolver) ResolveWorkspace(ctx context.Context, workspaceID string) (*domain.Workspace, error) {
	if workspaceID == "" {
		return nil, domain.ErrWorkspaceNotFound
	}
	return r.workspaces.FindByID(ctx, workspaceID)
}

func (r *Resolver) ResolveProjectContext(ctx context.Context, projectID string) (*ProjectContext, error) {
	if projectID == "" {
		return nil, domain.ErrProjectNotFound
	}
	project, err := r.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	workspace, err := r.workspaces.FindByID(ctx, project.WorkspaceID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrWorkspaceNotFound)
		}
		return nil, err
	}
	return &ProjectContext{Project: project, Workspace: workspace}, nil
}

func (r *Resolver) ResolveTaskContext(ctx context.Context, taskID string) (*TaskContext, error) {
	if taskID == "" {
		return nil, domain.ErrTaskNotFound
	}
	task, err := r.tasks.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	pc, err := r.ResolveProjectContext(ctx, task.ProjectID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("task %s: %w", taskID, err)
		}
		return nil, err
	}
	return &TaskContext{Task: task, Project: pc.Project, Workspace: pc.Workspace}, nil
}

// IsEmployeeAssigned reports whether employeeID is on the project.
func IsEmployeeAssigned(project *domain.Project, employeeID string) bool {
	return project.HasEmployee(employeeID)
}

// IsClientOwner reports whether clientID owns the workspace.
func IsClientOwner(workspace *domain.Workspace, clientID string) bool {
	return workspace != nil && clientID != "" && workspace.ClientID == clientID
}

// IsProjectEmployeeOfWorkspace reports whether employeeID is assigned to any
// project inside the workspace.
func (r *Resolver) IsProjectEmployeeOfWorkspace(ctx context.Context, workspace *domain.Workspace, employeeID string) (bool, error) {
	if workspace == nil || employeeID == "" {
		return false, nil
	}
	return r.projects.HasAssignmentInWorkspace(ctx, workspace.ID, employeeID)
}

// WorkspaceFacts resolves a workspace. The employee assignment lookup only
// runs for employee callers.
func (r *Resolver) WorkspaceFacts(ctx context.Context, caller domain.Caller, workspaceID string) (Facts, error) {
	ws, err := r.ResolveWorkspace(ctx, workspaceID)
	if err != nil {
		return Facts{}, err
	}
	facts := Facts{Workspace: ws}
	if caller.Role == domain.RoleEmployee {
		facts.AssignedInWorkspace, err = r.IsProjectEmployeeOfWorkspace(ctx, ws, caller.ID)
		if err != nil {
			return Facts{}, err
		}
	}
	return facts, nil
}

func (r *Resolver) ProjectFacts(ctx context.Context, projectID string) (Facts, error) {
	pc, err := r.ResolveProjectContext(ctx, projectID)
	if err != nil {
		return Facts{}, err
	}
	return Facts{Workspace: pc.Workspace, Project: pc.Project}, nil
}

func (r *Resolver) TaskFacts(ctx context.Context, taskID string) (Facts, error) {
	tc, err := r.ResolveTaskContext(ctx, taskID)
	if err != nil {
		return Facts{}, err
	}
	return Facts{Workspace: tc.Workspace, Project: tc.Project, Task: tc.Task}, nil
}
