// handlers/ai.go - Heuristic Advisory HTTP Handlers
package handlers

import (
	"time"

	"collabsphere/middleware"
	"collabsphere/models"
	"collabsphere/services"

	"github.com/gofiber/fiber/v2"
)

// SuggestPriority suggests a task priority from keyword, due-date, and
// status heuristics. Overrides are optional; stored task values fill gaps.
// POST /api/ai/priority-suggest
func SuggestPriority(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	var req struct {
		TaskID      uint              `json:"task_id"`
		Title       string            `json:"title"`
		Description string            `json:"description"`
		Status      models.TaskStatus `json:"status"`
		DueDate     *time.Time        `json:"due_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.TaskID == 0 {
		return badRequest(c, "task_id is required")
	}

	suggestion, err := advisorService.SuggestTaskPriority(p, services.PrioritySuggestRequest{
		TaskID:      req.TaskID,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":            true,
		"suggested_priority": suggestion.SuggestedPriority,
		"rationale":          suggestion.Rationale,
	})
}

// PredictDelayRisk scores the risk that a task slips its due date.
// POST /api/ai/delay-risk
func PredictDelayRisk(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	var req struct {
		TaskID      uint                `json:"task_id"`
		Status      models.TaskStatus   `json:"status"`
		Priority    models.TaskPriority `json:"priority"`
		HasAssignee *bool               `json:"has_assignee"`
		DueDate     *time.Time          `json:"due_date"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.TaskID == 0 {
		return badRequest(c, "task_id is required")
	}

	prediction, err := advisorService.PredictTaskDelayRisk(p, services.DelayRiskRequest{
		TaskID:      req.TaskID,
		Status:      req.Status,
		Priority:    req.Priority,
		HasAssignee: req.HasAssignee,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"risk_score":  prediction.RiskScore,
		"risk_level":  prediction.RiskLevel,
		"explanation": prediction.Explanation,
	})
}
