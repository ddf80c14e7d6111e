package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type userService struct {
	users  ports.UserRepository
	guard  *authz.Guard
	logger zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(users ports.UserRepository, guard *authz.Guard, logger zerolog.Logger) ports.UserService {
	return &userService{users: users, guard: guard, logger: logger}
}

func (s *userService) List(ctx context.Context, caller domain.Caller) ([]*domain.User, error) {
	if err := s.guard.Authorize(ctx, caller, authz.IdentityList, authz.Facts{}); err != nil {
		return nil, err
	}
	return s.users.List(ctx)
}

// Get returns the caller's own identity, or any identity for an admin.
func (s *userService) Get(ctx context.Context, caller domain.Caller, id string) (*domain.User, error) {
	if err := s.guard.Authorize(ctx, caller, authz.IdentityRead, authz.Facts{SubjectID: id}); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, id)
}

// Update changes role and disabled flag. Admins cannot disable themselves;
// the change reaches the subject's session on their next login.
func (s *userService) Update(ctx context.Context, caller domain.Caller, id string, input ports.UpdateUserInput) (*domain.User, error) {
	facts := authz.Facts{SubjectID: id, DisablesSubject: input.Disabled != nil && *input.Disabled}
	if err := s.guard.Authorize(ctx, caller, authz.IdentityUpdate, facts); err != nil {
		return nil, err
	}
	if input.Role == nil && input.Disabled == nil {
		return nil, domain.ErrNoUpdates
	}
	if input.Role != nil && !input.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	if input.Disabled != nil {
		user.Disabled = *input.Disabled
	}
	user.UpdatedAt = now()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", id).Msg("failed to update user")
		return nil, err
	}

	s.logger.Info().
		Str("user_id", id).
		Str("role", string(user.Role)).
		Bool("disabled", user.Disabled).
		Str("by", caller.ID).
		Msg("user updated")
	return user, nil
}
