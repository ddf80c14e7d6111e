package ports

import (
	"context"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// SignupInput carries the fields accepted at account creation.
type SignupInput struct {
	Email    string
	Password string
	Name     string
}

// SessionResult is returned on successful login or signup.
type SessionResult struct {
	Token     string
	ExpiresAt time.Time
	User      *domain.User
}

// UpdateProfileInput holds the self-editable identity fields. Nil fields are
// left unchanged.
type UpdateProfileInput struct {
	Name           *string
	Phone          *string
	Address        *string
	CompanyName    *string
	ProfilePicture *string
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*SessionResult, error)
	Login(ctx context.Context, email, password string) (*SessionResult, error)
	Me(ctx context.Context, caller domain.Caller) (*domain.User, error)
	ChangePassword(ctx context.Context, caller domain.Caller, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, caller domain.Caller, input UpdateProfileInput) (*domain.User, error)
}

// LoginLimiter throttles repeated failed logins for the same email.
type LoginLimiter interface {
	Blocked(ctx context.Context, email string) (bool, error)
	Fail(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// PasswordHasher is the password-hashing capability the auth service calls.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
