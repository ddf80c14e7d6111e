package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

func TestProjectService_ClientCreate(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	p, err := h.projects.Create(ctx, wd.clientA, ports.CreateProjectInput{WorkspaceID: wd.w.ID, Name: "Brand refresh"})
	if err != nil {
		t.Fatalf("client create in own workspace: %v", err)
	}
	if p.WorkspaceID != wd.w.ID || len(p.AssignedEmployeeIDs) != 0 {
		t.Errorf("unexpected project %+v", p)
	}

	if _, err := h.projects.Create(ctx, wd.clientA, ports.CreateProjectInput{WorkspaceID: wd.v.ID, Name: "Intrusion"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client create in foreign workspace: expected ErrForbidden, got %v", err)
	}
	if _, err := h.projects.Create(ctx, wd.employeeE, ports.CreateProjectInput{WorkspaceID: wd.w.ID, Name: "Side project"}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("employee create: expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_ClientUpdate(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	p, err := h.projects.Update(ctx, wd.clientA, wd.p.ID, ports.UpdateProjectInput{Description: ptr("New brief")})
	if err != nil {
		t.Fatalf("owner update: %v", err)
	}
	if p.Description != "New brief" {
		t.Errorf("description = %q", p.Description)
	}

	ids := []string{wd.employeeF.ID}
	if _, err := h.projects.Update(ctx, wd.clientA, wd.p.ID, ports.UpdateProjectInput{AssignedEmployeeIDs: &ids}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client assignment change: expected ErrForbidden, got %v", err)
	}
	stored, _ := h.store.Projects().FindByID(ctx, wd.p.ID)
	if !stored.HasEmployee(wd.employeeE.ID) || stored.HasEmployee(wd.employeeF.ID) {
		t.Errorf("assignments changed by client: %v", stored.AssignedEmployeeIDs)
	}

	if _, err := h.projects.Update(ctx, wd.clientB, wd.p.ID, ports.UpdateProjectInput{Name: ptr("Hijack")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign client update: expected ErrForbidden, got %v", err)
	}
	if _, err := h.projects.Update(ctx, wd.employeeE, wd.p.ID, ports.UpdateProjectInput{Name: ptr("Mine")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("employee update: expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_AdminAssignments(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	bad := []string{wd.clientA.ID}
	if _, err := h.projects.Update(ctx, wd.admin, wd.p.ID, ports.UpdateProjectInput{AssignedEmployeeIDs: &bad}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("client in assignment set: expected ErrInvalidInput, got %v", err)
	}

	both := []string{wd.employeeE.ID, wd.employeeF.ID, wd.employeeE.ID}
	p, err := h.projects.Update(ctx, wd.admin, wd.p.ID, ports.UpdateProjectInput{AssignedEmployeeIDs: &both})
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if len(p.AssignedEmployeeIDs) != 2 {
		t.Errorf("expected de-duplicated assignments, got %v", p.AssignedEmployeeIDs)
	}
}

func TestProjectService_ListScoping(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	count := func(caller domain.Caller, workspaceID string) int {
		t.Helper()
		list, err := h.projects.List(ctx, caller, workspaceID)
		if err != nil {
			t.Fatalf("list for %s: %v", caller.ID, err)
		}
		return len(list)
	}

	if n := count(wd.admin, ""); n != 2 {
		t.Errorf("admin sees %d projects, want 2", n)
	}
	if n := count(wd.clientA, ""); n != 2 {
		t.Errorf("client A sees %d projects, want 2", n)
	}
	if n := count(wd.clientB, ""); n != 0 {
		t.Errorf("client B sees %d projects, want 0", n)
	}
	if n := count(wd.employeeE, ""); n != 1 {
		t.Errorf("employee E sees %d projects, want 1", n)
	}
	if n := count(wd.employeeE, wd.v.ID); n != 0 {
		t.Errorf("employee E sees %d projects in V, want 0", n)
	}

	if _, err := h.projects.List(ctx, wd.clientB, wd.w.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client B listing W: expected ErrForbidden, got %v", err)
	}
}

func TestProjectService_ReadAndDelete(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	if _, err := h.projects.Get(ctx, wd.employeeE, wd.p.ID); err != nil {
		t.Errorf("assigned employee read: %v", err)
	}
	if _, err := h.projects.Get(ctx, wd.employeeE, wd.q.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned project: expected ErrForbidden, got %v", err)
	}

	if err := h.projects.Delete(ctx, wd.clientA, wd.p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client delete: expected ErrForbidden, got %v", err)
	}

	task, _ := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Wireframes"})
	if err := h.projects.Delete(ctx, wd.admin, wd.p.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if _, err := h.store.Tasks().FindByID(ctx, task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("task survived project delete: %v", err)
	}
	if _, err := h.projects.Get(ctx, wd.admin, wd.p.ID); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("expected ErrProjectNotFound, got %v", err)
	}
}
