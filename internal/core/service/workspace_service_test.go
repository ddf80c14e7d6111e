package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

func TestWorkspaceService_ClientIsolation(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	got, err := h.ws.Get(ctx, wd.clientA, wd.w.ID)
	if err != nil {
		t.Fatalf("owner read: %v", err)
	}
	if got.ID != wd.w.ID {
		t.Errorf("got workspace %s", got.ID)
	}

	ws, err := h.ws.Get(ctx, wd.clientB, wd.w.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("cross-tenant read: expected ErrForbidden, got %v", err)
	}
	if ws != nil {
		t.Fatal("cross-tenant read must not return workspace data")
	}

	if _, err := h.ws.Get(ctx, wd.clientB, "does-not-exist"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("missing workspace for client: expected ErrForbidden, got %v", err)
	}
	if _, err := h.ws.Get(ctx, wd.admin, "does-not-exist"); !errors.Is(err, domain.ErrWorkspaceNotFound) {
		t.Errorf("missing workspace for admin: expected ErrWorkspaceNotFound, got %v", err)
	}
}

func TestWorkspaceService_ListScoping(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()
	lonely := h.seedUser(t, "empG", domain.RoleEmployee)

	cases := []struct {
		name   string
		caller domain.Caller
		want   []string
	}{
		{"admin sees all", wd.admin, []string{wd.v.ID, wd.w.ID}},
		{"client A sees own", wd.clientA, []string{wd.w.ID}},
		{"client B sees own", wd.clientB, []string{wd.v.ID}},
		{"assigned employee", wd.employeeE, []string{wd.w.ID}},
		{"unassigned employee", lonely, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			list, err := h.ws.List(ctx, tc.caller)
			if err != nil {
				t.Fatalf("list: %v", err)
			}
			if len(list) != len(tc.want) {
				t.Fatalf("got %d workspaces, want %d", len(list), len(tc.want))
			}
			got := map[string]bool{}
			for _, w := range list {
				got[w.ID] = true
			}
			for _, id := range tc.want {
				if !got[id] {
					t.Errorf("missing workspace %s", id)
				}
			}
		})
	}
}

func TestWorkspaceService_EmployeeRead(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	if _, err := h.ws.Get(ctx, wd.employeeE, wd.w.ID); err != nil {
		t.Errorf("assigned employee read: %v", err)
	}
	if _, err := h.ws.Get(ctx, wd.employeeE, wd.v.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned workspace: expected ErrForbidden, got %v", err)
	}
}

func TestWorkspaceService_CreateRules(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	if _, err := h.ws.Create(ctx, wd.clientA, ports.CreateWorkspaceInput{Name: "Mine", ClientID: wd.clientA.ID}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client create: expected ErrForbidden, got %v", err)
	}
	if _, err := h.ws.Create(ctx, wd.admin, ports.CreateWorkspaceInput{Name: "Bad", ClientID: wd.employeeE.ID}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("non-client owner: expected ErrInvalidInput, got %v", err)
	}
	if _, err := h.ws.Create(ctx, wd.admin, ports.CreateWorkspaceInput{Name: " ", ClientID: wd.clientA.ID}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank name: expected ErrInvalidInput, got %v", err)
	}

	renamed, err := h.ws.Rename(ctx, wd.admin, wd.w.ID, "Acme Corp")
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if renamed.Name != "Acme Corp" {
		t.Errorf("name = %q", renamed.Name)
	}
	if _, err := h.ws.Rename(ctx, wd.clientA, wd.w.ID, "Mine now"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client rename: expected ErrForbidden, got %v", err)
	}
}

func TestWorkspaceService_DeleteCascades(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	task, err := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Design"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if _, err := h.comments.Create(ctx, wd.employeeE, task.ID, "on it"); err != nil {
		t.Fatalf("comment: %v", err)
	}

	if err := h.ws.Delete(ctx, wd.clientA, wd.w.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("client delete: expected ErrForbidden, got %v", err)
	}
	if err := h.ws.Delete(ctx, wd.admin, wd.w.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := h.store.Projects().FindByID(ctx, wd.p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("project survived cascade: %v", err)
	}
	if _, err := h.store.Tasks().FindByID(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("task survived cascade: %v", err)
	}
	comments, _ := h.store.Comments().ListByTask(ctx, task.ID)
	if len(comments) != 0 {
		t.Errorf("%d comments survived cascade", len(comments))
	}
	if _, err := h.store.Workspaces().FindByID(ctx, wd.v.ID); err != nil {
		t.Errorf("unrelated workspace removed: %v", err)
	}
}
