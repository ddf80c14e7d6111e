package memory

import (
	"context"
	"sort"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// TaskRepository implements ports.TaskRepository.
type TaskRepository struct{ s *Store }

func (r *TaskRepository) Create(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	t, ok := r.s.tasks[id]
	if !ok {
		return nil, domain.ErrTaskNotFound
	}
	return cloneTask(t), nil
}

func (r *TaskRepository) ListByProject(_ context.Context, projectID string) ([]*domain.Task, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Task{}
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID {
			out = append(out, cloneTask(t))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Order != out[j].Order {
			return out[i].Order < out[j].Order
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// MaxOrder returns the highest order in the project, or 0 when it has no
// tasks.
func (r *TaskRepository) MaxOrder(_ context.Context, projectID string) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	highest := 0
	for _, t := range r.s.tasks {
		if t.ProjectID == projectID && t.Order > highest {
			highest = t.Order
		}
	}
	return highest, nil
}

func (r *TaskRepository) Update(_ context.Context, t *domain.Task) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[t.ID]; !ok {
		return domain.ErrTaskNotFound
	}
	r.s.tasks[t.ID] = cloneTask(t)
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tasks[id]; !ok {
		return domain.ErrTaskNotFound
	}
	delete(r.s.tasks, id)
	return nil
}

func (r *TaskRepository) IDsByProjects(_ context.Context, projectIDs []string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	projects := toSet(projectIDs)
	ids := []string{}
	for _, t := range r.s.tasks {
		if _, ok := projects[t.ProjectID]; ok {
			ids = append(ids, t.ID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *TaskRepository) DeleteByProjects(_ context.Context, projectIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	projects := toSet(projectIDs)
	for id, t := range r.s.tasks {
		if _, ok := projects[t.ProjectID]; ok {
			delete(r.s.tasks, id)
		}
	}
	return nil
}

// CommentRepository implements ports.CommentRepository.
type CommentRepository struct{ s *Store }

func (r *CommentRepository) Create(_ context.Context, c *domain.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	clone := *c
	r.s.comments[c.ID] = &clone
	return nil
}

func (r *CommentRepository) ListByTask(_ context.Context, taskID string) ([]*domain.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []*domain.Comment{}
	for _, c := range r.s.comments {
		if c.TaskID == taskID {
			clone := *c
			out = append(out, &clone)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *CommentRepository) DeleteByTasks(_ context.Context, taskIDs []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	tasks := toSet(taskIDs)
	for id, c := range r.s.comments {
		if _, ok := tasks[c.TaskID]; ok {
			delete(r.s.comments, id)
		}
	}
	return nil
}
