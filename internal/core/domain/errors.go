package domain

import (
	"errors"
	"fmt"
)

// Authentication and authorization failures.
var (
	ErrUnauthenticated  = errors.New("unauthenticated")
	ErrAccountDisabled  = errors.New("account disabled, contact administrator")
	ErrForbidden        = errors.New("access forbidden")
	ErrSelfModification = fmt.Errorf("%w: cannot disable your own account", ErrForbidden)
)

// ErrNotFound is wrapped by every "record does not exist" error.
var ErrNotFound = errors.New("not found")

var (
	ErrUserNotFound      = fmt.Errorf("user %w", ErrNotFound)
	ErrWorkspaceNotFound = fmt.Errorf("workspace %w", ErrNotFound)
	ErrProjectNotFound   = fmt.Errorf("project %w", ErrNotFound)
	ErrTaskNotFound      = fmt.Errorf("task %w", ErrNotFound)
	ErrPaymentNotFound   = fmt.Errorf("payment %w", ErrNotFound)
	ErrRevenueNotFound   = fmt.Errorf("revenue %w", ErrNotFound)
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("an account with this email already exists")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
)

// ErrInvalidInput is wrapped by request-level validation failures raised below
// the transport layer.
var ErrInvalidInput = errors.New("invalid input")

var (
	ErrInvalidRole     = fmt.Errorf("%w: invalid role", ErrInvalidInput)
	ErrInvalidStatus   = fmt.Errorf("%w: invalid status", ErrInvalidInput)
	ErrInvalidCurrency = fmt.Errorf("%w: invalid currency", ErrInvalidInput)
	ErrNoUpdates       = fmt.Errorf("%w: no updates provided", ErrInvalidInput)
)

// InvalidInput wraps ErrInvalidInput with a caller-facing message.
func InvalidInput(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, msg)
}
