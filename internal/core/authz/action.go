// Package authz decides whether an authenticated caller may perform an
// operation on a resource.
//
// The decision table in Decide is pure: it sees only the caller and the Facts
// a Resolver established by walking the target's ancestry
// (task -> project -> workspace -> owning client). Guard ties the two
// together for the service layer and reports every decision to its
// observers.
package authz

// Resource is a protected entity type.
type Resource string

const (
	ResourceWorkspace Resource = "workspace"
	ResourceProject   Resource = "project"
	ResourceTask      Resource = "task"
	ResourceComment   Resource = "comment"
	ResourcePayment   Resource = "payment"
	ResourceRevenue   Resource = "revenue"
	ResourceIdentity  Resource = "identity"
)

// Verb is the operation performed on a resource.
type Verb string

const (
	VerbRead   Verb = "read"
	VerbList   Verb = "list"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
	// VerbProfile covers self-service edits of one's own identity (profile
	// fields and password).
	VerbProfile Verb = "profile"
)

// Action is a (resource, verb) pair checked by the engine.
type Action struct {
	Resource Resource
	Verb     Verb
}

func (a Action) String() string { return string(a.Resource) + "." + string(a.Verb) }

// Mutates reports whether the action changes state.
func (a Action) Mutates() bool {
	switch a.Verb {
	case VerbCreate, VerbUpdate, VerbDelete, VerbProfile:
		return true
	}
	return false
}

var (
	WorkspaceRead   = Action{ResourceWorkspace, VerbRead}
	WorkspaceList   = Action{ResourceWorkspace, VerbList}
	WorkspaceCreate = Action{ResourceWorkspace, VerbCreate}
	WorkspaceUpdate = Action{ResourceWorkspace, VerbUpdate}
	WorkspaceDelete = Action{ResourceWorkspace, VerbDelete}

	ProjectRead   = Action{ResourceProject, VerbRead}
	ProjectList   = Action{ResourceProject, VerbList}
	ProjectCreate = Action{ResourceProject, VerbCreate}
	ProjectUpdate = Action{ResourceProject, VerbUpdate}
	ProjectDelete = Action{ResourceProject, VerbDelete}

	TaskRead   = Action{ResourceTask, VerbRead}
	TaskList   = Action{ResourceTask, VerbList}
	TaskCreate = Action{ResourceTask, VerbCreate}
	TaskUpdate = Action{ResourceTask, VerbUpdate}
	TaskDelete = Action{ResourceTask, VerbDelete}

	CommentList   = Action{ResourceComment, VerbList}
	CommentCreate = Action{ResourceComment, VerbCreate}

	PaymentRead   = Action{ResourcePayment, VerbRead}
	PaymentList   = Action{ResourcePayment, VerbList}
	PaymentCreate = Action{ResourcePayment, VerbCreate}
	PaymentUpdate = Action{ResourcePayment, VerbUpdate}
	PaymentDelete = Action{ResourcePayment, VerbDelete}

	RevenueRead   = Action{ResourceRevenue, VerbRead}
	RevenueList   = Action{ResourceRevenue, VerbList}
	RevenueCreate = Action{ResourceRevenue, VerbCreate}
	RevenueUpdate = Action{ResourceRevenue, VerbUpdate}
	RevenueDelete = Action{ResourceRevenue, VerbDelete}

	IdentityRead    = Action{ResourceIdentity, VerbRead}
	IdentityList    = Action{ResourceIdentity, VerbList}
	IdentityUpdate  = Action{ResourceIdentity, VerbUpdate}
	IdentityProfile = Action{ResourceIdentity, VerbProfile}
)

// Actions returns every action the engine knows about.
func Actions() []Action {
	return []Action{
		WorkspaceRead, WorkspaceList, WorkspaceCreate, WorkspaceUpdate, WorkspaceDelete,
		ProjectRead, ProjectList, ProjectCreate, ProjectUpdate, ProjectDelete,
		TaskRead, TaskList, TaskCreate, TaskUpdate, TaskDelete,
		CommentList, CommentCreate,
		PaymentRead, PaymentList, PaymentCreate, PaymentUpdate, PaymentDelete,
		RevenueRead, RevenueList, RevenueCreate, RevenueUpdate, RevenueDelete,
		IdentityRead, IdentityList, IdentityUpdate, IdentityProfile,
	}
}
