package memory

import (
	"context"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

// WorkspaceRepository implements ports.WorkspaceRepository.
type WorkspaceRepository struct{ s *Store }

func (r *WorkspaceRepository) Create(_ context.Context, w *domain.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *w
	r.s.workspaces[w.ID] = &clone
	return nil
}

func (r *WorkspaceRepository) FindByID(_ context.Context, id string) (*domain.Workspace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	w, ok := r.s.workspaces[id]
	if !ok {
		return nil, domain.ErrWorkspaceNotFound
	}
	clone := *w
	return &clone, nil
}

// List returns matching workspaces newest first.
func (r *WorkspaceRepository) List(_ context.Context, f ports.WorkspaceFilter) ([]*domain.Workspace, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var ids map[string]struct{}
	if f.IDs != nil {
		ids = toSet(f.IDs)
	}

	out := []*domain.Workspace{}
	for _, w := range r.s.workspaces {
		if f.ClientID != "" && w.ClientID != f.ClientID {
			continue
		}
		if ids != nil {
			if _, ok := ids[w.ID]; !ok {
				continue
			}
		}
		clone := *w
		out = append(out, &clone)
	}
	newestFirst(out, func(w *domain.Workspace) (time.Time, string) { return w.CreatedAt, w.ID })
	return out, nil
}

func (r *WorkspaceRepository) Update(_ context.Context, w *domain.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workspaces[w.ID]; !ok {
		return domain.ErrWorkspaceNotFound
	}
	clone := *w
	r.s.workspaces[w.ID] = &clone
	return nil
}

func (r *WorkspaceRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.workspaces[id]; !ok {
		return domain.ErrWorkspaceNotFound
	}
	delete(r.s.workspaces, id)
	return nil
}
