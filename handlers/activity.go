// handlers/activity.go - Activity Trail HTTP Handlers
package handlers

import (
	"collabsphere/middleware"
	"collabsphere/models"
	"collabsphere/services"

	"github.com/gofiber/fiber/v2"
)

// ListActivity returns trail entries for teams the caller belongs to,
// newest first.
// GET /api/activity?team=&project=&task=&event_type=&limit=
func ListActivity(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	filter := services.ActivityFilter{
		EventType: models.ActivityEventType(c.Query("event_type")),
		Limit:     c.QueryInt("limit"),
	}
	if v := c.QueryInt("team"); v > 0 {
		id := uint(v)
		filter.TeamID = &id
	}
	if v := c.QueryInt("project"); v > 0 {
		id := uint(v)
		filter.ProjectID = &id
	}
	if v := c.QueryInt("task"); v > 0 {
		id := uint(v)
		filter.TaskID = &id
	}

	logs, err := activityService.List(p, filter)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"activity": logs,
		"count":    len(logs),
	})
}
