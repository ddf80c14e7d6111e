// Package memory implements every repository port with in-process maps.
// It backs STORE=memory and the service tests; data is lost on restart.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

var (
	_ ports.UserRepository      = (*UserRepository)(nil)
	_ ports.WorkspaceRepository = (*WorkspaceRepository)(nil)
	_ ports.ProjectRepository   = (*ProjectRepository)(nil)
	_ ports.TaskRepository      = (*TaskRepository)(nil)
	_ ports.CommentRepository   = (*CommentRepository)(nil)
	_ ports.PaymentRepository   = (*PaymentRepository)(nil)
	_ ports.RevenueRepository   = (*RevenueRepository)(nil)
	_ ports.AuditRepository     = (*AuditRepository)(nil)
)

// Store holds all collections behind a single lock so cascades observe a
// consistent snapshot.
type Store struct {
	mu sync.RWMutex

	users      map[string]*domain.User
	emails     map[string]string // normalized email -> user id
	workspaces map[string]*domain.Workspace
	projects   map[string]*domain.Project
	tasks      map[string]*domain.Task
	comments   map[string]*domain.Comment
	payments   map[string]*domain.Payment
	revenues   map[string]*domain.Revenue
	audit      []domain.AuditEvent
}

// New creates an empty store.
func New() *Store {
	return &Store{
		users:      make(map[string]*domain.User),
		emails:     make(map[string]string),
		workspaces: make(map[string]*domain.Workspace),
		projects:   make(map[string]*domain.Project),
		tasks:      make(map[string]*domain.Task),
		comments:   make(map[string]*domain.Comment),
		payments:   make(map[string]*domain.Payment),
		revenues:   make(map[string]*domain.Revenue),
	}
}

func (s *Store) Users() *UserRepository           { return &UserRepository{s} }
func (s *Store) Workspaces() *WorkspaceRepository { return &WorkspaceRepository{s} }
func (s *Store) Projects() *ProjectRepository     { return &ProjectRepository{s} }
func (s *Store) Tasks() *TaskRepository           { return &TaskRepository{s} }
func (s *Store) Comments() *CommentRepository     { return &CommentRepository{s} }
func (s *Store) Payments() *PaymentRepository     { return &PaymentRepository{s} }
func (s *Store) Revenues() *RevenueRepository     { return &RevenueRepository{s} }
func (s *Store) Audit() *AuditRepository          { return &AuditRepository{s} }

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneUser(u *domain.User) *domain.User {
	c := *u
	c.Profile = domain.Profile{
		Phone:          cloneString(u.Profile.Phone),
		Address:        cloneString(u.Profile.Address),
		CompanyName:    cloneString(u.Profile.CompanyName),
		ProfilePicture: cloneString(u.Profile.ProfilePicture),
	}
	return &c
}

func cloneProject(p *domain.Project) *domain.Project {
	c := *p
	c.AssignedEmployeeIDs = append([]string{}, p.AssignedEmployeeIDs...)
	return &c
}

func cloneTask(t *domain.Task) *domain.Task {
	c := *t
	c.AssignedTo = cloneString(t.AssignedTo)
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	return &c
}

// newestFirst sorts by creation time descending, id ascending on ties.
func newestFirst[T any](items []T, key func(T) (time.Time, string)) {
	sort.SliceStable(items, func(i, j int) bool {
		ti, idi := key(items[i])
		tj, idj := key(items[j])
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return idi < idj
	})
}

func toSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
