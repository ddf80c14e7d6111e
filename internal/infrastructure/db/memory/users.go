package memory

import (
	"context"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// UserRepository implements ports.UserRepository.
type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	email := domain.NormalizeEmail(user.Email)
	if _, exists := r.s.emails[email]; exists {
		return domain.ErrUserExists
	}
	if _, exists := r.s.users[user.ID]; exists {
		return domain.ErrUserExists
	}

	clone := cloneUser(user)
	clone.Email = email
	r.s.users[clone.ID] = clone
	r.s.emails[email] = clone.ID
	return nil
}

func (r *UserRepository) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *UserRepository) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[domain.NormalizeEmail(email)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.s.users[id]), nil
}

// List returns users newest first.
func (r *UserRepository) List(_ context.Context) ([]*domain.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, cloneUser(u))
	}
	newestFirst(out, func(u *domain.User) (time.Time, string) { return u.CreatedAt, u.ID })
	return out, nil
}

func (r *UserRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.users)), nil
}

func (r *UserRepository) Update(_ context.Context, user *domain.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	email := domain.NormalizeEmail(user.Email)
	if email != existing.Email {
		if _, taken := r.s.emails[email]; taken {
			return domain.ErrUserExists
		}
		delete(r.s.emails, existing.Email)
		r.s.emails[email] = user.ID
	}

	clone := cloneUser(user)
	clone.Email = email
	r.s.users[user.ID] = clone
	return nil
}
