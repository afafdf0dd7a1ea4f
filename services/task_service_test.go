package services_test

import (
	"errors"
	"testing"
	"time"

	"collabsphere/models"
	"collabsphere/services"
)

func strPtr(s string) *string                          { return &s }
func statusPtr(s models.TaskStatus) *models.TaskStatus { return &s }

func TestCreateTaskDefaults(t *testing.T) {
	f := newManageFixture(t)

	task, err := f.env.Tasks.CreateTask(asPrincipal(f.Contributor), f.Project.ID, services.TaskCreateInput{
		Title: "Write docs",
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if task.Status != models.TaskStatusTodo {
		t.Fatalf("status = %s, want todo", task.Status)
	}
	if task.Priority != models.TaskPriorityMedium {
		t.Fatalf("priority = %d, want medium", task.Priority)
	}
	if task.CreatedByID != f.Contributor.ID {
		t.Fatalf("created_by = %d, want %d", task.CreatedByID, f.Contributor.ID)
	}
	if task.CompletedAt != nil {
		t.Fatal("completed_at set on a fresh task")
	}

	if got := f.env.countEvents(t, models.EventTaskCreated, task.ID); got != 1 {
		t.Fatalf("task_created events = %d, want 1", got)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	_, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{Title: "  "})
	expectValidationError(t, err, "title")

	_, err = f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{
		Title: "x", Status: "archived",
	})
	expectValidationError(t, err, "status")

	_, err = f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{
		Title: "x", Priority: 9,
	})
	expectValidationError(t, err, "priority")

	_, err = f.env.Tasks.CreateTask(asPrincipal(f.Outsider), f.Project.ID, services.TaskCreateInput{Title: "x"})
	if !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected outsider denied, got %v", err)
	}
}

func TestCreateTaskAssigneeValidation(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	// Assignee must exist.
	ghost := f.Outsider.ID + 1000
	_, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{
		Title: "x", AssigneeID: &ghost,
	})
	expectValidationError(t, err, "assignee_id")

	// Team membership alone is not enough; the assignee needs a project
	// membership.
	_, err = f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{
		Title: "x", AssigneeID: &f.Bystander.ID,
	})
	expectValidationError(t, err, "assignee_id")

	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{
		Title: "x", AssigneeID: &f.Contributor.ID,
	})
	if err != nil {
		t.Fatalf("create with valid assignee: %v", err)
	}
	if task.AssigneeID == nil || *task.AssigneeID != f.Contributor.ID {
		t.Fatalf("assignee = %v, want %d", task.AssigneeID, f.Contributor.ID)
	}
}

func TestUpdateTaskStatusTransitionAudit(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{Title: "Ship it"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	for _, status := range []models.TaskStatus{models.TaskStatusBlocked, models.TaskStatusDone} {
		if _, err := f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
			Status: statusPtr(status),
		}); err != nil {
			t.Fatalf("update to %s: %v", status, err)
		}
	}

	if got := f.env.countEvents(t, models.EventTaskStatusChanged, task.ID); got != 2 {
		t.Fatalf("task_status_changed events = %d, want 2", got)
	}
	if got := f.env.countEvents(t, models.EventTaskUpdated, task.ID); got != 2 {
		t.Fatalf("task_updated events = %d, want 2", got)
	}

	// Re-submitting the current status is an update, not a transition.
	if _, err := f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		Status: statusPtr(models.TaskStatusDone),
	}); err != nil {
		t.Fatalf("idempotent update: %v", err)
	}
	if got := f.env.countEvents(t, models.EventTaskStatusChanged, task.ID); got != 2 {
		t.Fatalf("repeat status emitted a transition event, count = %d", got)
	}
}

func TestCompletedAtLifecycle(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	before := time.Now().UTC().Add(-time.Second)
	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{Title: "Finish"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	task, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		Status: statusPtr(models.TaskStatusDone),
	})
	if err != nil {
		t.Fatalf("update to done: %v", err)
	}
	if task.CompletedAt == nil {
		t.Fatal("completed_at not stamped on first transition to done")
	}
	if task.CompletedAt.Before(before) {
		t.Fatalf("completed_at %v predates the transition", task.CompletedAt)
	}
	first := *task.CompletedAt

	// Leaving done keeps the original completion time.
	task, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		Status: statusPtr(models.TaskStatusInProgress),
	})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Fatalf("completed_at changed on reopen: %v", task.CompletedAt)
	}

	// A second trip into done does not re-stamp.
	task, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		Status: statusPtr(models.TaskStatusDone),
	})
	if err != nil {
		t.Fatalf("re-complete: %v", err)
	}
	if task.CompletedAt == nil || !task.CompletedAt.Equal(first) {
		t.Fatalf("completed_at re-stamped: %v", task.CompletedAt)
	}
}

func TestUpdateTaskPartialFields(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	due := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)
	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{
		Title:       "Original",
		Description: "keep me",
		AssigneeID:  &f.Contributor.ID,
		DueDate:     &due,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Only the title is provided; everything else must survive.
	task, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		Title: strPtr("Renamed"),
	})
	if err != nil {
		t.Fatalf("rename: %v", err)
	}
	if task.Title != "Renamed" || task.Description != "keep me" {
		t.Fatalf("partial update clobbered fields: %+v", task)
	}
	if task.AssigneeID == nil || *task.AssigneeID != f.Contributor.ID {
		t.Fatal("partial update cleared assignee")
	}
	if task.DueDate == nil {
		t.Fatal("partial update cleared due date")
	}

	// Explicit null clears the assignee.
	task, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		AssigneeSet: true,
	})
	if err != nil {
		t.Fatalf("clear assignee: %v", err)
	}
	if task.AssigneeID != nil {
		t.Fatalf("assignee not cleared: %v", task.AssigneeID)
	}

	// Explicit null clears the due date.
	task, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		DueDateSet: true,
	})
	if err != nil {
		t.Fatalf("clear due date: %v", err)
	}
	if task.DueDate != nil {
		t.Fatalf("due date not cleared: %v", task.DueDate)
	}

	// Reassignment goes through assignee validation.
	_, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		AssigneeID:  &f.Bystander.ID,
		AssigneeSet: true,
	})
	expectValidationError(t, err, "assignee_id")

	_, err = f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{
		Title: strPtr("   "),
	})
	expectValidationError(t, err, "title")
}

func TestUpdateTaskEmptyPayloadIsSilent(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{Title: "Quiet"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	// Nothing to change: no write, no trail entry.
	got, err := f.env.Tasks.UpdateTask(manager, task.ID, services.TaskUpdateInput{})
	if err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if got.Title != "Quiet" {
		t.Fatalf("task mutated by empty update: %+v", got)
	}
	if count := f.env.countEvents(t, models.EventTaskUpdated, task.ID); count != 0 {
		t.Fatalf("task_updated events = %d, want 0 for empty payload", count)
	}
}

func TestUpdateTaskPermissions(t *testing.T) {
	f := newManageFixture(t)

	task, err := f.env.Tasks.CreateTask(asPrincipal(f.Manager), f.Project.ID, services.TaskCreateInput{Title: "Guarded"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	_, err = f.env.Tasks.UpdateTask(asPrincipal(f.Outsider), task.ID, services.TaskUpdateInput{
		Title: strPtr("Hacked"),
	})
	if !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected outsider denied, got %v", err)
	}

	_, err = f.env.Tasks.UpdateTask(asPrincipal(f.Manager), task.ID+500, services.TaskUpdateInput{
		Title: strPtr("Ghost"),
	})
	if !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListTasksFilters(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	soon := time.Now().UTC().Add(24 * time.Hour)
	later := time.Now().UTC().Add(10 * 24 * time.Hour)
	seed := []services.TaskCreateInput{
		{Title: "Fix login", Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, DueDate: &soon},
		{Title: "Polish UI", Priority: models.TaskPriorityLow, DueDate: &later},
		{Title: "Fix logout", Status: models.TaskStatusBlocked, AssigneeID: &f.Contributor.ID},
	}
	for _, in := range seed {
		if _, err := f.env.Tasks.CreateTask(manager, f.Project.ID, in); err != nil {
			t.Fatalf("seed task %q: %v", in.Title, err)
		}
	}

	tasks, err := f.env.Tasks.ListTasks(manager, f.Project.ID, services.TaskFilter{Status: models.TaskStatusBlocked})
	if err != nil {
		t.Fatalf("filter by status: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Fix logout" {
		t.Fatalf("status filter got %d tasks", len(tasks))
	}

	tasks, err = f.env.Tasks.ListTasks(manager, f.Project.ID, services.TaskFilter{Priority: models.TaskPriorityHigh})
	if err != nil {
		t.Fatalf("filter by priority: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Fix login" {
		t.Fatalf("priority filter got %d tasks", len(tasks))
	}

	tasks, err = f.env.Tasks.ListTasks(manager, f.Project.ID, services.TaskFilter{AssigneeID: &f.Contributor.ID})
	if err != nil {
		t.Fatalf("filter by assignee: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("assignee filter got %d tasks", len(tasks))
	}

	cutoff := time.Now().UTC().Add(48 * time.Hour)
	tasks, err = f.env.Tasks.ListTasks(manager, f.Project.ID, services.TaskFilter{DueBefore: &cutoff})
	if err != nil {
		t.Fatalf("filter by due_before: %v", err)
	}
	if len(tasks) != 1 || tasks[0].Title != "Fix login" {
		t.Fatalf("due_before filter got %d tasks", len(tasks))
	}

	tasks, err = f.env.Tasks.ListTasks(manager, f.Project.ID, services.TaskFilter{Query: "fix"})
	if err != nil {
		t.Fatalf("filter by query: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("text query got %d tasks, want 2", len(tasks))
	}
}

func TestComments(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{Title: "Discuss"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	_, err = f.env.Tasks.AddComment(manager, task.ID, "  ")
	expectValidationError(t, err, "body")

	if _, err := f.env.Tasks.AddComment(manager, task.ID, "first"); err != nil {
		t.Fatalf("add comment: %v", err)
	}
	if _, err := f.env.Tasks.AddComment(asPrincipal(f.Viewer), task.ID, "second"); err != nil {
		t.Fatalf("viewer comment: %v", err)
	}

	_, err = f.env.Tasks.AddComment(asPrincipal(f.Outsider), task.ID, "sneaky")
	if !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected outsider denied, got %v", err)
	}

	comments, err := f.env.Tasks.ListComments(manager, task.ID)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("got %d comments, want 2", len(comments))
	}
	if comments[0].Body != "first" {
		t.Fatalf("comments not oldest-first: %q", comments[0].Body)
	}

	if got := f.env.countEvents(t, models.EventTaskCommented, task.ID); got != 2 {
		t.Fatalf("task_commented events = %d, want 2", got)
	}
}

func TestDeleteTask(t *testing.T) {
	f := newManageFixture(t)
	manager := asPrincipal(f.Manager)

	task, err := f.env.Tasks.CreateTask(manager, f.Project.ID, services.TaskCreateInput{Title: "Temp"})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := f.env.Tasks.DeleteTask(asPrincipal(f.Outsider), task.ID); !errors.Is(err, services.ErrPermissionDenied) {
		t.Fatalf("expected outsider denied, got %v", err)
	}
	if err := f.env.Tasks.DeleteTask(manager, task.ID); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if err := f.env.Tasks.DeleteTask(manager, task.ID); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}
