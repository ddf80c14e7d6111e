package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/rusafhasan/agencymanagement/internal/core/authz"
	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
	"github.com/rusafhasan/agencymanagement/internal/core/session"
	"github.com/rusafhasan/agencymanagement/internal/infrastructure/db/memory"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubLimiter struct {
	mu       sync.Mutex
	failures map[string]int
	max      int
	resets   int
}

func newStubLimiter(limit int) *stubLimiter {
	return &stubLimiter{failures: make(map[string]int), max: limit}
}

func (l *stubLimiter) Blocked(_ context.Context, email string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.failures[email] >= l.max, nil
}

func (l *stubLimiter) Fail(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.failures[email]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, email string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.failures, email)
	l.resets++
	return nil
}

// ---------------------------------------------------------------------------
// Harness: every service wired over one in-memory store.
// ---------------------------------------------------------------------------

type harness struct {
	store    *memory.Store
	codec    *session.Codec
	limiter  *stubLimiter
	guard    *authz.Guard
	auth     *AuthService
	users    ports.UserService
	ws       ports.WorkspaceService
	projects ports.ProjectService
	tasks    ports.TaskService
	comments ports.CommentService
	payments ports.PaymentService
	revenues ports.RevenueService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	st := memory.New()
	log := zerolog.Nop()

	codec, err := session.NewCodec([]byte("service-test-secret-0123456789abcdef"), time.Hour)
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}

	guard := authz.NewGuard(log)
	resolver := authz.NewResolver(st.Workspaces(), st.Projects(), st.Tasks())
	cascade := NewCascade(st.Projects(), st.Tasks(), st.Comments())
	limiter := newStubLimiter(3)

	return &harness{
		store:    st,
		codec:    codec,
		limiter:  limiter,
		guard:    guard,
		auth:     NewAuthService(st.Users(), codec, BcryptHasher{Cost: bcrypt.MinCost}, limiter, guard, log),
		users:    NewUserService(st.Users(), guard, log),
		ws:       NewWorkspaceService(st.Workspaces(), st.Projects(), st.Users(), cascade, resolver, guard, log),
		projects: NewProjectService(st.Workspaces(), st.Projects(), st.Users(), cascade, resolver, guard, log),
		tasks:    NewTaskService(st.Tasks(), st.Comments(), st.Users(), resolver, guard, log),
		comments: NewCommentService(st.Comments(), st.Users(), resolver, guard, log),
		payments: NewPaymentService(st.Payments(), st.Users(), st.Projects(), guard, log),
		revenues: NewRevenueService(st.Revenues(), st.Users(), st.Projects(), guard, log),
	}
}

// seedUser stores an identity directly and returns the caller its token
// would carry.
func (h *harness) seedUser(t *testing.T, id string, role domain.Role) domain.Caller {
	t.Helper()
	u := &domain.User{ID: id, Email: id + "@example.com", Name: "User " + id, Role: role, CreatedAt: time.Now()}
	if err := h.store.Users().Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", id, err)
	}
	return u.Caller()
}

// world is the shared fixture: client A owns workspace W with project P
// (employee E assigned) and project Q (employee F assigned); client B owns
// workspace V.
type world struct {
	admin, clientA, clientB, employeeE, employeeF domain.Caller
	w, v                                          *domain.Workspace
	p, q                                          *domain.Project
}

func (h *harness) seedWorld(t *testing.T) *world {
	t.Helper()
	ctx := context.Background()
	wd := &world{
		admin:     h.seedUser(t, "admin", domain.RoleAdmin),
		clientA:   h.seedUser(t, "clientA", domain.RoleClient),
		clientB:   h.seedUser(t, "clientB", domain.RoleClient),
		employeeE: h.seedUser(t, "empE", domain.RoleEmployee),
		employeeF: h.seedUser(t, "empF", domain.RoleEmployee),
	}

	var err error
	if wd.w, err = h.ws.Create(ctx, wd.admin, ports.CreateWorkspaceInput{Name: "Acme", ClientID: wd.clientA.ID}); err != nil {
		t.Fatalf("create W: %v", err)
	}
	if wd.v, err = h.ws.Create(ctx, wd.admin, ports.CreateWorkspaceInput{Name: "Globex", ClientID: wd.clientB.ID}); err != nil {
		t.Fatalf("create V: %v", err)
	}
	if wd.p, err = h.projects.Create(ctx, wd.admin, ports.CreateProjectInput{WorkspaceID: wd.w.ID, Name: "Website"}); err != nil {
		t.Fatalf("create P: %v", err)
	}
	if wd.q, err = h.projects.Create(ctx, wd.admin, ports.CreateProjectInput{WorkspaceID: wd.w.ID, Name: "Mobile"}); err != nil {
		t.Fatalf("create Q: %v", err)
	}

	assign := func(p *domain.Project, ids ...string) *domain.Project {
		updated, err := h.projects.Update(ctx, wd.admin, p.ID, ports.UpdateProjectInput{AssignedEmployeeIDs: &ids})
		if err != nil {
			t.Fatalf("assign %s: %v", p.ID, err)
		}
		return updated
	}
	wd.p = assign(wd.p, wd.employeeE.ID)
	wd.q = assign(wd.q, wd.employeeF.ID)
	return wd
}

func ptr[T any](v T) *T { return &v }
