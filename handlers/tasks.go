// handlers/tasks.go - Task and Comment HTTP Handlers
package handlers

import (
	"encoding/json"
	"time"

	"collabsphere/middleware"
	"collabsphere/models"
	"collabsphere/services"

	"github.com/gofiber/fiber/v2"
)

// CreateTask creates a task in a project.
// POST /api/projects/:id/tasks
func CreateTask(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	var req struct {
		Title       string              `json:"title"`
		Description string              `json:"description"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		AssigneeID  *uint               `json:"assignee_id"`
		DueDate     *time.Time          `json:"due_date"`
		StartDate   *time.Time          `json:"start_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	task, err := taskService.CreateTask(p, projectID, services.TaskCreateInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		StartDate:   req.StartDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}

// ListTasks lists a project's tasks with optional filters.
// GET /api/projects/:id/tasks?status=&priority=&assignee=&due_before=&due_after=&q=
func ListTasks(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	filter := services.TaskFilter{
		Status: models.TaskStatus(c.Query("status")),
		Query:  c.Query("q"),
	}
	if v := c.QueryInt("priority"); v > 0 {
		filter.Priority = models.TaskPriority(v)
	}
	if v := c.QueryInt("assignee"); v > 0 {
		id := uint(v)
		filter.AssigneeID = &id
	}
	if raw := c.Query("due_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid due_before timestamp")
		}
		filter.DueBefore = &t
	}
	if raw := c.Query("due_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return badRequest(c, "Invalid due_after timestamp")
		}
		filter.DueAfter = &t
	}

	tasks, err := taskService.ListTasks(p, projectID, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"tasks":   tasks,
		"count":   len(tasks),
	})
}

// GetTask retrieves a task by ID.
// GET /api/tasks/:id
func GetTask(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	taskID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	task, err := taskService.GetTask(p, taskID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}

// UpdateTask applies a partial update to a task. Keys absent from the body
// are left alone; "assignee_id": null explicitly clears the assignee.
// PUT /api/tasks/:id
func UpdateTask(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	taskID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	var req struct {
		Title       *string              `json:"title"`
		Description *string              `json:"description"`
		Status      *models.TaskStatus   `json:"status"`
		Priority    *models.TaskPriority `json:"priority"`
		AssigneeID  *uint                `json:"assignee_id"`
		DueDate     *time.Time           `json:"due_date"`
		StartDate   *time.Time           `json:"start_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	// A nil pointer cannot distinguish "absent" from "explicit null", so
	// presence is read off the raw body keys.
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &keys); err != nil {
		return badRequest(c, "Invalid request body")
	}
	_, assigneeSet := keys["assignee_id"]
	_, dueDateSet := keys["due_date"]
	_, startDateSet := keys["start_date"]

	task, err := taskService.UpdateTask(p, taskID, services.TaskUpdateInput{
		Title:        req.Title,
		Description:  req.Description,
		Status:       req.Status,
		Priority:     req.Priority,
		AssigneeID:   req.AssigneeID,
		AssigneeSet:  assigneeSet,
		DueDate:      req.DueDate,
		DueDateSet:   dueDateSet,
		StartDate:    req.StartDate,
		StartDateSet: startDateSet,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"task":    task,
	})
}

// DeleteTask hard-deletes a task.
// DELETE /api/tasks/:id
func DeleteTask(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	taskID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	if err := taskService.DeleteTask(p, taskID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Task deleted",
	})
}

// ListComments lists a task's comments.
// GET /api/tasks/:id/comments
func ListComments(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	taskID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	comments, err := taskService.ListComments(p, taskID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"comments": comments,
		"count":    len(comments),
	})
}

// AddComment creates a comment on a task.
// POST /api/tasks/:id/comments
func AddComment(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	taskID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid task ID")
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := taskService.AddComment(p, taskID, req.Body)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"comment": comment,
	})
}
