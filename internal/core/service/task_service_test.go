package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

func TestTaskService_AssignedEmployeeScoping(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	if _, err := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Homepage"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	tasks, err := h.tasks.List(ctx, wd.employeeE, wd.p.ID)
	if err != nil {
		t.Fatalf("assigned employee list: %v", err)
	}
	if len(tasks) != 1 {
		t.Errorf("expected 1 task, got %d", len(tasks))
	}

	// F works in the same workspace but on a different project.
	if _, err := h.tasks.List(ctx, wd.employeeF, wd.p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned employee list: expected ErrForbidden, got %v", err)
	}
	if _, err := h.tasks.List(ctx, wd.clientB, wd.p.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign client list: expected ErrForbidden, got %v", err)
	}
	if _, err := h.tasks.List(ctx, wd.clientA, wd.p.ID); err != nil {
		t.Errorf("owning client list: %v", err)
	}
}

func TestTaskService_CreateIsAdminOnly(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()

	for _, caller := range []domain.Caller{wd.employeeE, wd.clientA} {
		if _, err := h.tasks.Create(ctx, caller, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Sneaky"}); !errors.Is(err, domain.ErrForbidden) {
			t.Errorf("%s create: expected ErrForbidden, got %v", caller.Role, err)
		}
	}

	first, err := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "One"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	second, _ := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Two"})

	if first.Order != 1 || second.Order != 2 {
		t.Errorf("orders = %d, %d; want 1, 2", first.Order, second.Order)
	}
	if first.Status != domain.TaskNotStarted {
		t.Errorf("initial status = %q", first.Status)
	}

	if _, err := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: "nope", Title: "x"}); !errors.Is(err, domain.ErrProjectNotFound) {
		t.Errorf("missing project for admin: expected ErrProjectNotFound, got %v", err)
	}
}

func TestTaskService_Update(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()
	task, _ := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Copy"})

	due := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	updated, err := h.tasks.Update(ctx, wd.employeeE, task.ID, ports.UpdateTaskInput{
		Status:     ptr(domain.TaskInProgress),
		AssignedTo: ptr(wd.employeeE.ID),
		DueDate:    &due,
	})
	if err != nil {
		t.Fatalf("assigned employee update: %v", err)
	}
	if updated.Status != domain.TaskInProgress || updated.AssignedTo == nil || updated.DueDate == nil {
		t.Errorf("unexpected task %+v", updated)
	}

	cleared, err := h.tasks.Update(ctx, wd.admin, task.ID, ports.UpdateTaskInput{AssignedTo: ptr(""), DueDate: &time.Time{}})
	if err != nil {
		t.Fatalf("clear fields: %v", err)
	}
	if cleared.AssignedTo != nil || cleared.DueDate != nil {
		t.Errorf("fields not cleared: %+v", cleared)
	}

	if _, err := h.tasks.Update(ctx, wd.clientA, task.ID, ports.UpdateTaskInput{Title: ptr("Client edit")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("client update: expected ErrForbidden, got %v", err)
	}
	if _, err := h.tasks.Update(ctx, wd.employeeF, task.ID, ports.UpdateTaskInput{Title: ptr("Other edit")}); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned employee update: expected ErrForbidden, got %v", err)
	}
	if _, err := h.tasks.Update(ctx, wd.employeeE, task.ID, ports.UpdateTaskInput{Status: ptr(domain.TaskStatus("done"))}); !errors.Is(err, domain.ErrInvalidStatus) {
		t.Errorf("bad status: expected ErrInvalidStatus, got %v", err)
	}
}

func TestTaskService_DeleteIsAdminOnly(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()
	task, _ := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Temp"})
	_, _ = h.comments.Create(ctx, wd.clientA, task.ID, "please hurry")

	if err := h.tasks.Delete(ctx, wd.employeeE, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("employee delete: expected ErrForbidden, got %v", err)
	}
	if err := h.tasks.Delete(ctx, wd.admin, task.ID); err != nil {
		t.Fatalf("admin delete: %v", err)
	}
	if left, _ := h.store.Comments().ListByTask(ctx, task.ID); len(left) != 0 {
		t.Errorf("%d comments survived task delete", len(left))
	}
}

func TestCommentService(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()
	task, _ := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Review"})

	c, err := h.comments.Create(ctx, wd.clientA, task.ID, "  looks good ")
	if err != nil {
		t.Fatalf("owning client comment: %v", err)
	}
	if c.AuthorName != "User clientA" || c.Content != "looks good" {
		t.Errorf("unexpected comment %+v", c)
	}
	if _, err := h.comments.Create(ctx, wd.employeeE, task.ID, "thanks"); err != nil {
		t.Fatalf("assigned employee comment: %v", err)
	}

	if _, err := h.comments.Create(ctx, wd.employeeF, task.ID, "drive-by"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("unassigned employee comment: expected ErrForbidden, got %v", err)
	}
	if _, err := h.comments.List(ctx, wd.clientB, task.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("foreign client read: expected ErrForbidden, got %v", err)
	}
	if _, err := h.comments.Create(ctx, wd.employeeE, task.ID, "   "); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("blank comment: expected ErrInvalidInput, got %v", err)
	}

	list, err := h.comments.List(ctx, wd.employeeE, task.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 comments, got %d", len(list))
	}
}

func TestTaskService_DisabledTokenStillAuthenticates(t *testing.T) {
	h := newHarness(t)
	wd := h.seedWorld(t)
	ctx := context.Background()
	if _, err := h.tasks.Create(ctx, wd.admin, ports.CreateTaskInput{ProjectID: wd.p.ID, Title: "Ship"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	token, _, err := h.codec.Issue(wd.employeeE)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := h.users.Update(ctx, wd.admin, wd.employeeE.ID, ports.UpdateUserInput{Disabled: ptr(true)}); err != nil {
		t.Fatalf("disable: %v", err)
	}

	claims, err := h.codec.Verify(token)
	if err != nil {
		t.Fatalf("token issued before disabling must still verify: %v", err)
	}
	if _, err := h.tasks.List(ctx, claims.Caller(), wd.p.ID); err != nil {
		t.Fatalf("disabled employee's live token should still list tasks: %v", err)
	}
}
