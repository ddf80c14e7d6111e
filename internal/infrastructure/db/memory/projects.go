package memory

import (
	"context"
	"sort"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

// ProjectRepository implements ports.ProjectRepository.
type ProjectRepository struct{ s *Store }

func (r *ProjectRepository) Create(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *ProjectRepository) FindByID(_ context.Context, id string) (*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.projects[id]
	if !ok {
		return nil, domain.ErrProjectNotFound
	}
	return cloneProject(p), nil
}

// List returns matching projects newest first.
func (r *ProjectRepository) List(_ context.Context, f ports.ProjectFilter) ([]*domain.Project, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var workspaceIDs map[string]struct{}
	if f.WorkspaceIDs != nil {
		workspaceIDs = toSet(f.WorkspaceIDs)
	}

	out := []*domain.Project{}
	for _, p := range r.s.projects {
		if f.WorkspaceID != "" && p.WorkspaceID != f.WorkspaceID {
			continue
		}
		if workspaceIDs != nil {
			if _, ok := workspaceIDs[p.WorkspaceID]; !ok {
				continue
			}
		}
		if f.EmployeeID != "" && !p.HasEmployee(f.EmployeeID) {
			continue
		}
		out = append(out, cloneProject(p))
	}
	newestFirst(out, func(p *domain.Project) (time.Time, string) { return p.CreatedAt, p.ID })
	return out, nil
}

func (r *ProjectRepository) Update(_ context.Context, p *domain.Project) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[p.ID]; !ok {
		return domain.ErrProjectNotFound
	}
	r.s.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *ProjectRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.projects[id]; !ok {
		return domain.ErrProjectNotFound
	}
	delete(r.s.projects, id)
	return nil
}

func (r *ProjectRepository) IDsByWorkspace(_ context.Context, workspaceID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []string{}
	for _, p := range r.s.projects {
		if p.WorkspaceID == workspaceID {
			ids = append(ids, p.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ProjectRepository) DeleteByWorkspace(_ context.Context, workspaceID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for id, p := range r.s.projects {
		if p.WorkspaceID == workspaceID {
			delete(r.s.projects, id)
		}
	}
	return nil
}

func (r *ProjectRepository) WorkspaceIDsForEmployee(_ context.Context, employeeID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]struct{})
	ids := []string{}
	for _, p := range r.s.projects {
		if !p.HasEmployee(employeeID) {
			continue
		}
		if _, dup := seen[p.WorkspaceID]; dup {
			continue
		}
		seen[p.WorkspaceID] = struct{}{}
		ids = append(ids, p.WorkspaceID)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *ProjectRepository) HasAssignmentInWorkspace(_ context.Context, workspaceID, employeeID string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.projects {
		if p.WorkspaceID == workspaceID && p.HasEmployee(employeeID) {
			return true, nil
		}
	}
	return false, nil
}
