package domain

import (
	"strings"
	"time"
)

// Role is the closed set of roles an identity can hold.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
	RoleClient   Role = "client"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleEmployee, RoleClient:
		return true
	}
	return false
}

// ParseRole converts s to a Role, rejecting anything outside the enumeration.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}

// Profile holds the optional contact details an identity can edit about itself.
type Profile struct {
	Phone          *string `json:"phone"          bson:"phone,omitempty"`
	Address        *string `json:"address"        bson:"address,omitempty"`
	CompanyName    *string `json:"companyName"    bson:"company_name,omitempty"`
	ProfilePicture *string `json:"profilePicture" bson:"profile_picture,omitempty"`
}

// User models an identity held in the credential store.
type User struct {
	ID           string    `json:"id"        bson:"_id"`
	Email        string    `json:"email"     bson:"email"`
	Name         string    `json:"name"      bson:"name"`
	PasswordHash string    `json:"-"         bson:"password_hash"`
	Role         Role      `json:"role"      bson:"role"`
	Disabled     bool      `json:"disabled"  bson:"disabled"`
	Profile      Profile   `json:"profile"   bson:"profile"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

// Caller returns the identity facts the authorization layer evaluates.
func (u *User) Caller() Caller {
	return Caller{ID: u.ID, Email: u.Email, Role: u.Role, Disabled: u.Disabled}
}

// Caller is the authenticated identity behind a request, as asserted by its
// session token.
type Caller struct {
	ID       string
	Email    string
	Role     Role
	Disabled bool
}

// IsAdmin reports whether the caller holds the admin role.
func (c Caller) IsAdmin() bool { return c.Role == RoleAdmin }

// NormalizeEmail lower-cases and trims an email so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
