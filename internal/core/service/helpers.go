package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

const (
	minPasswordLen = 6
	minNameLen     = 2
	maxNameLen     = 100
)

var validate = validator.New()

func newID() string { return uuid.NewString() }

func now() time.Time { return time.Now().UTC() }

func validEmail(email string) bool {
	return validate.Var(email, "required,email") == nil
}

func checkPassword(password string) error {
	if len(password) < minPasswordLen {
		return domain.InvalidInput("password must be at least 6 characters")
	}
	return nil
}

func checkName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n := utf8.RuneCountInString(name); n < minNameLen || n > maxNameLen {
		return "", domain.InvalidInput("name must be between 2 and 100 characters")
	}
	return name, nil
}

// required trims s and rejects it when empty.
func required(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.InvalidInput(field + " is required")
	}
	return s, nil
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
