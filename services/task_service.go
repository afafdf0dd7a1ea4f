// services/task_service.go - Task Lifecycle Coordinator
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"collabsphere/models"

	"gorm.io/gorm"
)

// TaskService governs task creation and mutation: cross-entity assignee
// validation, the status-change audit event, and the completed_at side
// effect. It is the only write path allowed to touch completed_at.
type TaskService struct {
	db         *gorm.DB
	membership *MembershipService
	activity   *ActivityService
}

func NewTaskService(db *gorm.DB, membership *MembershipService, activity *ActivityService) *TaskService {
	return &TaskService{db: db, membership: membership, activity: activity}
}

// TaskCreateInput carries the fields accepted at creation. Zero values fall
// back to the defaults (status todo, priority medium).
type TaskCreateInput struct {
	Title       string
	Description string
	Status      models.TaskStatus
	Priority    models.TaskPriority
	AssigneeID  *uint
	DueDate     *time.Time
	StartDate   *time.Time
}

// TaskUpdateInput carries a partial update. Nil pointers mean "not provided";
// the *Set flags distinguish "set to null" from "leave alone" for the
// nullable columns.
type TaskUpdateInput struct {
	Title       *string
	Description *string
	Status      *models.TaskStatus
	Priority    *models.TaskPriority

	AssigneeID   *uint
	AssigneeSet  bool
	DueDate      *time.Time
	DueDateSet   bool
	StartDate    *time.Time
	StartDateSet bool
}

// TaskFilter narrows a project task listing.
type TaskFilter struct {
	Status     models.TaskStatus
	Priority   models.TaskPriority
	AssigneeID *uint
	DueBefore  *time.Time
	DueAfter   *time.Time
	Query      string
}

// validateAssignee checks that the assignee exists and holds a membership on
// the project. Both failures are field-scoped validation errors.
func (s *TaskService) validateAssignee(projectID, assigneeID uint) error {
	var user models.User
	if err := s.db.First(&user, assigneeID).Error; err != nil {
		return NewValidationError("assignee_id", "Assignee user not found.")
	}

	var count int64
	s.db.Model(&models.ProjectMembership{}).
		Where("project_id = ? AND user_id = ?", projectID, assigneeID).
		Count(&count)
	if count == 0 {
		return NewValidationError("assignee_id", "Assignee must be a member of the project.")
	}
	return nil
}

// CreateTask creates a task in a project the principal is a member of.
func (s *TaskService) CreateTask(p models.Principal, projectID uint, in TaskCreateInput) (*models.Task, error) {
	if !s.membership.CanReadProject(p, projectID) {
		return nil, ErrPermissionDenied
	}

	var project models.Project
	if err := s.db.Select("id", "team_id").First(&project, projectID).Error; err != nil {
		return nil, ErrNotFound
	}

	if strings.TrimSpace(in.Title) == "" {
		return nil, NewValidationError("title", "Task title is required.")
	}

	status := in.Status
	if status == "" {
		status = models.TaskStatusTodo
	}
	if !models.ValidTaskStatus(status) {
		return nil, NewValidationError("status", "Invalid task status.")
	}

	priority := in.Priority
	if priority == 0 {
		priority = models.TaskPriorityMedium
	}
	if !models.ValidTaskPriority(priority) {
		return nil, NewValidationError("priority", "Invalid task priority.")
	}

	if in.AssigneeID != nil {
		if err := s.validateAssignee(projectID, *in.AssigneeID); err != nil {
			return nil, err
		}
	}

	task := &models.Task{
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		Priority:    priority,
		CreatedByID: p.UserID,
		AssigneeID:  in.AssigneeID,
		DueDate:     in.DueDate,
		StartDate:   in.StartDate,
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, err
	}

	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventTaskCreated,
		Message:   fmt.Sprintf("Task created: %s", task.Title),
		TeamID:    &project.TeamID,
		ProjectID: &projectID,
		TaskID:    &task.ID,
	})

	return task, nil
}

// UpdateTask applies a partial update. The prior state is loaded first to
// compute the diff; a status transition emits task_status_changed, and the
// first transition into done performs a second write stamping completed_at.
// Both writes are durable before the method returns. Concurrent updates are
// last-write-wins; there is no optimistic locking.
func (s *TaskService) UpdateTask(p models.Principal, taskID uint, in TaskUpdateInput) (*models.Task, error) {
	var prior models.Task
	if err := s.db.First(&prior, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.membership.CanReadProject(p, prior.ProjectID) {
		return nil, ErrPermissionDenied
	}

	var project models.Project
	if err := s.db.Select("id", "team_id").First(&project, prior.ProjectID).Error; err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	var changed []string

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return nil, NewValidationError("title", "Task title is required.")
		}
		updates["title"] = *in.Title
		changed = append(changed, "title")
	}
	if in.Description != nil {
		updates["description"] = *in.Description
		changed = append(changed, "description")
	}

	newStatus := prior.Status
	if in.Status != nil {
		if !models.ValidTaskStatus(*in.Status) {
			return nil, NewValidationError("status", "Invalid task status.")
		}
		newStatus = *in.Status
		updates["status"] = newStatus
		changed = append(changed, "status")
	}

	if in.Priority != nil {
		if !models.ValidTaskPriority(*in.Priority) {
			return nil, NewValidationError("priority", "Invalid task priority.")
		}
		updates["priority"] = *in.Priority
		changed = append(changed, "priority")
	}

	if in.AssigneeSet {
		// Explicit null clears without validation; a concrete assignee must
		// exist and be a project member, same as at creation.
		if in.AssigneeID != nil {
			if err := s.validateAssignee(prior.ProjectID, *in.AssigneeID); err != nil {
				return nil, err
			}
		}
		updates["assignee_id"] = in.AssigneeID
		changed = append(changed, "assignee_id")
	}
	if in.DueDateSet {
		updates["due_date"] = in.DueDate
		changed = append(changed, "due_date")
	}
	if in.StartDateSet {
		updates["start_date"] = in.StartDate
		changed = append(changed, "start_date")
	}

	if len(updates) > 0 {
		if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).Updates(updates).Error; err != nil {
			return nil, err
		}

		s.activity.Record(ActivityEntry{
			Actor:     p,
			EventType: models.EventTaskUpdated,
			Message:   "Task updated",
			TeamID:    &project.TeamID,
			ProjectID: &prior.ProjectID,
			TaskID:    &taskID,
			Metadata:  map[string]interface{}{"fields": changed},
		})
	}

	if newStatus != prior.Status {
		// First transition into done stamps the completion time with a
		// second, immediate write. Leaving done never clears it.
		if newStatus == models.TaskStatusDone && prior.CompletedAt == nil {
			now := time.Now().UTC()
			if err := s.db.Model(&models.Task{}).Where("id = ?", taskID).
				Update("completed_at", now).Error; err != nil {
				return nil, err
			}
		}

		s.activity.Record(ActivityEntry{
			Actor:     p,
			EventType: models.EventTaskStatusChanged,
			Message:   fmt.Sprintf("Status changed %s -> %s", prior.Status, newStatus),
			TeamID:    &project.TeamID,
			ProjectID: &prior.ProjectID,
			TaskID:    &taskID,
		})
	}

	var task models.Task
	if err := s.db.Preload("Assignee").First(&task, taskID).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask retrieves a task for a member of its project.
func (s *TaskService) GetTask(p models.Principal, taskID uint) (*models.Task, error) {
	var task models.Task
	err := s.db.Preload("Assignee").Preload("CreatedBy").First(&task, taskID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.membership.CanReadProject(p, task.ProjectID) {
		return nil, ErrPermissionDenied
	}
	return &task, nil
}

// ListTasks lists a project's tasks with optional filters, newest first.
func (s *TaskService) ListTasks(p models.Principal, projectID uint, f TaskFilter) ([]models.Task, error) {
	if !s.membership.CanReadProject(p, projectID) {
		return nil, ErrPermissionDenied
	}

	q := s.db.Where("project_id = ?", projectID)
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != 0 {
		q = q.Where("priority = ?", f.Priority)
	}
	if f.AssigneeID != nil {
		q = q.Where("assignee_id = ?", *f.AssigneeID)
	}
	if f.DueBefore != nil {
		q = q.Where("due_date <= ?", *f.DueBefore)
	}
	if f.DueAfter != nil {
		q = q.Where("due_date >= ?", *f.DueAfter)
	}
	if f.Query != "" {
		like := "%" + strings.ToLower(f.Query) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var tasks []models.Task
	err := q.Preload("Assignee").Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// DeleteTask hard-deletes a task; comments and trail entries cascade.
func (s *TaskService) DeleteTask(p models.Principal, taskID uint) error {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if !s.membership.CanReadProject(p, task.ProjectID) {
		return ErrPermissionDenied
	}
	return s.db.Delete(&models.Task{}, taskID).Error
}

// ListComments lists a task's comments, oldest first.
func (s *TaskService) ListComments(p models.Principal, taskID uint) ([]models.Comment, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.membership.CanReadProject(p, task.ProjectID) {
		return nil, ErrPermissionDenied
	}

	var comments []models.Comment
	err := s.db.Where("task_id = ?", taskID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error
	return comments, err
}

// AddComment creates a comment on a task the principal can read.
func (s *TaskService) AddComment(p models.Principal, taskID uint, body string) (*models.Comment, error) {
	var task models.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !s.membership.CanReadProject(p, task.ProjectID) {
		return nil, ErrPermissionDenied
	}

	if strings.TrimSpace(body) == "" {
		return nil, NewValidationError("body", "Comment body is required.")
	}

	var project models.Project
	if err := s.db.Select("id", "team_id").First(&project, task.ProjectID).Error; err != nil {
		return nil, err
	}

	comment := &models.Comment{
		TaskID:   taskID,
		AuthorID: p.UserID,
		Body:     body,
	}
	if err := s.db.Create(comment).Error; err != nil {
		return nil, err
	}

	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventTaskCommented,
		Message:   "Comment added",
		TeamID:    &project.TeamID,
		ProjectID: &task.ProjectID,
		TaskID:    &taskID,
		Metadata:  map[string]interface{}{"comment_id": comment.ID},
	})

	return comment, nil
}
