package authz

import (
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
)

// Decision is the outcome of an authorization check.
type Decision int

const (
	Deny Decision = iota
	Allow
)

func (d Decision) String() string {
	if d == Allow {
		return "allow"
	}
	return "deny"
}

// Reason explains a Deny.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnauthenticated
	ReasonAccountDisabled
	ReasonForbidden
	ReasonSelfModification
	ReasonNotFound
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonUnauthenticated:
		return "unauthenticated"
	case ReasonAccountDisabled:
		return "account-disabled"
	case ReasonForbidden:
		return "forbidden"
	case ReasonSelfModification:
		return "self-modification"
	case ReasonNotFound:
		return "not-found"
	default:
		return "unknown"
	}
}

// Facts are what the resolver established about the target before the
// decision. Only the fields relevant to the action need to be set.
type Facts struct {
	Workspace *domain.Workspace
	Project   *domain.Project
	Task      *domain.Task
	Payment   *domain.Payment

	// AssignedInWorkspace is true when the caller is an employee assigned to
	// at least one project of Workspace.
	AssignedInWorkspace bool

	// SubjectID is the identity targeted by identity.* actions.
	SubjectID string
	// DisablesSubject is set when an identity update turns disabled on.
	DisablesSubject bool
	// TouchesAssignments is set when a project update replaces
	// assignedEmployeeIds.
	TouchesAssignments bool
}

// TargetID returns the id of the most specific record in f.
func (f Facts) TargetID() string {
	switch {
	case f.Payment != nil:
		return f.Payment.ID
	case f.Task != nil:
		return f.Task.ID
	case f.Project != nil:
		return f.Project.ID
	case f.Workspace != nil:
		return f.Workspace.ID
	default:
		return f.SubjectID
	}
}

// Result is a decision together with the action it was made for.
type Result struct {
	Decision Decision
	Reason   Reason
	Action   Action
}

func (r Result) Allowed() bool { return r.Decision == Allow }

// Err maps a Deny to the domain error the transport layer renders. It returns
// nil for Allow.
func (r Result) Err() error {
	if r.Allowed() {
		return nil
	}
	switch r.Reason {
	case ReasonUnauthenticated:
		return domain.ErrUnauthenticated
	case ReasonAccountDisabled:
		return domain.ErrAccountDisabled
	case ReasonSelfModification:
		return domain.ErrSelfModification
	case ReasonNotFound:
		return domain.ErrNotFound
	default:
		return domain.ErrForbidden
	}
}

func allow(a Action) Result { return Result{Decision: Allow, Action: a} }

func deny(a Action, reason Reason) Result {
	return Result{Decision: Deny, Reason: reason, Action: a}
}

// rule reports whether a non-admin, enabled caller may perform an action.
type rule func(c domain.Caller, f Facts) bool

func always(domain.Caller, Facts) bool { return true }

func clientOwnsWorkspace(c domain.Caller, f Facts) bool {
	return IsClientOwner(f.Workspace, c.ID)
}

func employeeInWorkspace(_ domain.Caller, f Facts) bool {
	return f.Workspace != nil && f.AssignedInWorkspace
}

func employeeOnProject(c domain.Caller, f Facts) bool {
	return IsEmployeeAssigned(f.Project, c.ID)
}

// clientOwnsProject requires the project to actually sit inside the owned
// workspace.
func clientOwnsProject(c domain.Caller, f Facts) bool {
	return f.Project != nil && f.Workspace != nil &&
		f.Project.WorkspaceID == f.Workspace.ID &&
		IsClientOwner(f.Workspace, c.ID)
}

func self(c domain.Caller, f Facts) bool {
	return f.SubjectID != "" && f.SubjectID == c.ID
}

// table is the per-resource decision table for employees and clients. Any
// (action, role) pair absent from it is denied. List actions allow the call
// itself; the rows returned are narrowed by ListScope.
var table = map[Action]map[domain.Role]rule{
	WorkspaceRead: {
		domain.RoleEmployee: employeeInWorkspace,
		domain.RoleClient:   clientOwnsWorkspace,
	},
	WorkspaceList: {
		domain.RoleEmployee: always,
		domain.RoleClient:   always,
	},

	ProjectRead: {
		domain.RoleEmployee: employeeOnProject,
		domain.RoleClient:   clientOwnsProject,
	},
	ProjectList: {
		domain.RoleEmployee: always,
		domain.RoleClient:   always,
	},
	ProjectCreate: {
		domain.RoleClient: clientOwnsWorkspace,
	},
	ProjectUpdate: {
		domain.RoleClient: func(c domain.Caller, f Facts) bool {
			return !f.TouchesAssignments && clientOwnsProject(c, f)
		},
	},

	TaskRead: {
		domain.RoleEmployee: employeeOnProject,
		domain.RoleClient:   clientOwnsProject,
	},
	TaskList: {
		domain.RoleEmployee: employeeOnProject,
		domain.RoleClient:   clientOwnsProject,
	},
	TaskUpdate: {
		domain.RoleEmployee: employeeOnProject,
	},

	CommentList: {
		domain.RoleEmployee: employeeOnProject,
		domain.RoleClient:   clientOwnsProject,
	},
	CommentCreate: {
		domain.RoleEmployee: employeeOnProject,
		domain.RoleClient:   clientOwnsProject,
	},

	PaymentRead: {
		domain.RoleEmployee: func(c domain.Caller, f Facts) bool {
			return f.Payment != nil && f.Payment.EmployeeID == c.ID
		},
	},
	PaymentList: {
		domain.RoleEmployee: always,
		domain.RoleClient:   always,
	},

	IdentityRead: {
		domain.RoleEmployee: self,
		domain.RoleClient:   self,
	},
	IdentityProfile: {
		domain.RoleEmployee: self,
		domain.RoleClient:   self,
	},
}

// Decide evaluates the decision table for caller performing action against
// the resolved facts. It performs no I/O.
//
// A disabled caller is denied before anything else. Admins are allowed
// everything except disabling their own account.
func Decide(caller domain.Caller, action Action, facts Facts) Result {
	if caller.ID == "" || !caller.Role.Valid() {
		return deny(action, ReasonUnauthenticated)
	}
	if caller.Disabled {
		return deny(action, ReasonAccountDisabled)
	}

	if caller.IsAdmin() {
		if action == IdentityUpdate && facts.DisablesSubject && facts.SubjectID == caller.ID {
			return deny(action, ReasonSelfModification)
		}
		return allow(action)
	}

	check, ok := table[action][caller.Role]
	if !ok || !check(caller, facts) {
		return deny(action, ReasonForbidden)
	}
	return allow(action)
}
