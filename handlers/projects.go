// handlers/projects.go - Project HTTP Handlers
package handlers

import (
	"collabsphere/middleware"
	"collabsphere/models"

	"github.com/gofiber/fiber/v2"
)

// CreateProject creates a project under a team; the caller becomes manager.
// POST /api/teams/:id/projects
func CreateProject(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	teamID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	project, err := projectService.CreateProject(p, teamID, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// ListProjects lists a team's projects.
// GET /api/teams/:id/projects?q=
func ListProjects(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	teamID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	projects, err := projectService.ListProjects(p, teamID, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject retrieves a project by ID.
// GET /api/projects/:id
func GetProject(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	project, err := projectService.GetProject(p, projectID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// UpdateProject updates a project (manage rights required).
// PUT /api/projects/:id
func UpdateProject(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	project, err := projectService.UpdateProject(p, projectID, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"project": project,
	})
}

// DeleteProject deletes a project (manage rights required).
// DELETE /api/projects/:id
func DeleteProject(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	if err := projectService.DeleteProject(p, projectID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Project deleted",
	})
}

// ListProjectMembers lists a project's memberships.
// GET /api/projects/:id/members
func ListProjectMembers(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	members, err := projectService.ListMembers(p, projectID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}

// AddProjectMember adds a user to the project (manage rights required; the
// user must already be a team member).
// POST /api/projects/:id/members
func AddProjectMember(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	projectID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid project ID")
	}

	var req struct {
		UserID uint               `json:"user_id"`
		Role   models.ProjectRole `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	member, err := projectService.AddMember(p, projectID, req.UserID, req.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"member":  member,
	})
}
