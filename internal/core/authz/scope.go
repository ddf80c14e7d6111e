package authz

import "github.com/rusafhasan/agencymanagement/internal/core/domain"

// ScopeKind says which rows of a listing a caller may see.
type ScopeKind int

const (
	// ScopeNone yields an empty listing.
	ScopeNone ScopeKind = iota
	// ScopeAll is unfiltered.
	ScopeAll
	// ScopeClient restricts to rows owned by SubjectID as a client.
	ScopeClient
	// ScopeEmployee restricts to rows SubjectID is assigned to or paid for.
	ScopeEmployee
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeAll:
		return "all"
	case ScopeClient:
		return "client"
	case ScopeEmployee:
		return "employee"
	default:
		return "none"
	}
}

// Scope is the row filter for a listing.
type Scope struct {
	Kind      ScopeKind
	SubjectID string
}

// ListScope returns the filter applied to a listing of resource after
// Decide allowed the list action itself.
//
// Workspaces and projects: clients see what they own, employees see what
// they are assigned to. Payments: employees see their own rows, clients see
// none. Every other resource is admin-only for listing.
func ListScope(caller domain.Caller, resource Resource) Scope {
	if caller.Disabled || caller.ID == "" {
		return Scope{Kind: ScopeNone}
	}
	if caller.IsAdmin() {
		return Scope{Kind: ScopeAll}
	}

	switch resource {
	case ResourceWorkspace, ResourceProject:
		switch caller.Role {
		case domain.RoleClient:
			return Scope{Kind: ScopeClient, SubjectID: caller.ID}
		case domain.RoleEmployee:
			return Scope{Kind: ScopeEmployee, SubjectID: caller.ID}
		}
	case ResourcePayment:
		if caller.Role == domain.RoleEmployee {
			return Scope{Kind: ScopeEmployee, SubjectID: caller.ID}
		}
	}
	return Scope{Kind: ScopeNone}
}
