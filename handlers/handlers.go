// handlers/handlers.go - Service wiring and shared helpers
package handlers

import (
	"errors"
	"log"
	"strconv"

	"collabsphere/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var (
	membershipService *services.MembershipService
	activityService   *services.ActivityService
	teamService       *services.TeamService
	projectService    *services.ProjectService
	taskService       *services.TaskService
	advisorService    *services.AdvisorService
)

// Init wires all services against the given database handle. Tests call this
// with an in-memory database; main calls it with the real connection.
func Init(db *gorm.DB) {
	membershipService = services.NewMembershipService(db)
	activityService = services.NewActivityService(db)
	teamService = services.NewTeamService(db, membershipService, activityService)
	projectService = services.NewProjectService(db, membershipService, activityService)
	taskService = services.NewTaskService(db, membershipService, activityService)
	advisorService = services.NewAdvisorService(db, membershipService, activityService)
}

// parseID parses a numeric path parameter.
func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

// respondError maps the service error taxonomy onto transport status codes.
func respondError(c *fiber.Ctx, err error) error {
	if ve, ok := services.AsValidationError(err); ok {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"error":   ve.Message,
			"field":   ve.Field,
		})
	}
	if errors.Is(err, services.ErrPermissionDenied) {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"error":   "You do not have permission to perform this action.",
		})
	}
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"error":   "Resource not found.",
		})
	}

	log.Printf("internal error: %v", err)
	return c.Status(500).JSON(fiber.Map{
		"success": false,
		"error":   "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(400).JSON(fiber.Map{"success": false, "error": message})
}
