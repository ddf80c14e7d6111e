package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
	"github.com/rusafhasan/agencymanagement/internal/core/session"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

// BcryptHasher implements ports.PasswordHasher.
type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = BcryptCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// AuthService implements signup, login and self-service account management.
type AuthService struct {
	users   ports.UserRepository
	codec   *session.Codec
	hasher  ports.PasswordHasher
	limiter ports.LoginLimiter
	guard   *authz.Guard
	logger  zerolog.Logger
}

// NewAuthService wires the auth service. limiter may be nil to disable
// login throttling.
func NewAuthService(
	users ports.UserRepository,
	codec *session.Codec,
	hasher ports.PasswordHasher,
	limiter ports.LoginLimiter,
	guard *authz.Guard,
	logger zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:   users,
		codec:   codec,
		hasher:  hasher,
		limiter: limiter,
		guard:   guard,
		logger:  logger,
	}
}

// Signup creates an identity. The first identity ever created is an admin;
// every later one is a client.
func (s *AuthService) Signup(ctx context.Context, input ports.SignupInput) (*ports.SessionResult, error) {
	email := domain.NormalizeEmail(input.Email)
	if !validEmail(email) {
		return nil, domain.InvalidInput("invalid email format")
	}
	if err := checkPassword(input.Password); err != nil {
		return nil, err
	}
	name, err := checkName(input.Name)
	if err != nil {
		return nil, err
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleClient
	if count == 0 {
		role = domain.RoleAdmin
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	ts := now()
	user := &domain.User{
		ID:           newID(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if !errors.Is(err, domain.ErrUserExists) {
			s.logger.Error().Err(err).Msg("failed to create user")
		}
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(role)).Msg("user signed up")
	return s.issue(user)
}

// Login verifies credentials. Repeated failures for the same email are
// throttled when a limiter is configured.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.SessionResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.InvalidInput("email and password are required")
	}

	if s.limiter != nil {
		blocked, err := s.limiter.Blocked(ctx, email)
		if err != nil {
			s.logger.Warn().Err(err).Msg("login throttle check failed, continuing")
		} else if blocked {
			return nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.recordFailure(ctx, email)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if s.hasher.Compare(user.PasswordHash, password) != nil {
		s.recordFailure(ctx, email)
		return nil, domain.ErrInvalidCredentials
	}

	if user.Disabled {
		s.logger.Info().Str("user_id", user.ID).Msg("login refused for disabled account")
		return nil, domain.ErrAccountDisabled
	}

	if s.limiter != nil {
		if err := s.limiter.Reset(ctx, email); err != nil {
			s.logger.Warn().Err(err).Msg("failed to reset login throttle")
		}
	}
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, caller domain.Caller) (*domain.User, error) {
	if err := s.guard.Authorize(ctx, caller, authz.IdentityRead, authz.Facts{SubjectID: caller.ID}); err != nil {
		return nil, err
	}
	return s.users.FindByID(ctx, caller.ID)
}

func (s *AuthService) ChangePassword(ctx context.Context, caller domain.Caller, oldPassword, newPassword string) error {
	if err := s.guard.Authorize(ctx, caller, authz.IdentityProfile, authz.Facts{SubjectID: caller.ID}); err != nil {
		return err
	}
	if oldPassword == "" || newPassword == "" {
		return domain.InvalidInput("old password and new password are required")
	}
	if err := checkPassword(newPassword); err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return err
	}
	if s.hasher.Compare(user.PasswordHash, oldPassword) != nil {
		return domain.InvalidInput("current password is incorrect")
	}

	hash, err := s.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = now()
	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update password")
		return err
	}

	s.logger.Info().Str("user_id", user.ID).Msg("password changed")
	return nil
}

func (s *AuthService) UpdateProfile(ctx context.Context, caller domain.Caller, input ports.UpdateProfileInput) (*domain.User, error) {
	if err := s.guard.Authorize(ctx, caller, authz.IdentityProfile, authz.Facts{SubjectID: caller.ID}); err != nil {
		return nil, err
	}
	if input.Name == nil && input.Phone == nil && input.Address == nil &&
		input.CompanyName == nil && input.ProfilePicture == nil {
		return nil, domain.ErrNoUpdates
	}

	user, err := s.users.FindByID(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name, err := checkName(*input.Name)
		if err != nil {
			return nil, err
		}
		user.Name = name
	}
	if input.Phone != nil {
		user.Profile.Phone = trimmed(input.Phone)
	}
	if input.Address != nil {
		user.Profile.Address = trimmed(input.Address)
	}
	if input.CompanyName != nil {
		user.Profile.CompanyName = trimmed(input.CompanyName)
	}
	if input.ProfilePicture != nil {
		user.Profile.ProfilePicture = input.ProfilePicture
	}
	user.UpdatedAt = now()

	if err := s.users.Update(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("user_id", user.ID).Msg("failed to update profile")
		return nil, err
	}
	return user, nil
}

func (s *AuthService) issue(user *domain.User) (*ports.SessionResult, error) {
	token, expiresAt, err := s.codec.Issue(user.Caller())
	if err != nil {
		return nil, err
	}
	return &ports.SessionResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

func (s *AuthService) recordFailure(ctx context.Context, email string) {
	if s.limiter == nil {
		return
	}
	if err := s.limiter.Fail(ctx, email); err != nil {
		s.logger.Warn().Err(err).Msg("failed to record login failure")
	}
}
