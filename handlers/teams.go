// handlers/teams.go - Team HTTP Handlers
package handlers

import (
	"collabsphere/middleware"
	"collabsphere/models"

	"github.com/gofiber/fiber/v2"
)

// CreateTeam creates a new team; the caller becomes its owner.
// POST /api/teams
func CreateTeam(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	team, err := teamService.CreateTeam(p, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// ListTeams lists teams the caller is a member of.
// GET /api/teams?q=
func ListTeams(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	teams, err := teamService.ListTeams(p, c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"teams":   teams,
		"count":   len(teams),
	})
}

// GetTeam retrieves a team by ID.
// GET /api/teams/:id
func GetTeam(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	teamID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	team, err := teamService.GetTeam(p, teamID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// UpdateTeam updates team information (owner/admin only).
// PUT /api/teams/:id
func UpdateTeam(c *fiber.Ctx) error {
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

	team, err := teamService.UpdateTeam(p, teamID, req.Name, req.Description)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"team":    team,
	})
}

// DeleteTeam deletes a team (owner/admin only).
// DELETE /api/teams/:id
func DeleteTeam(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	teamID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	if err := teamService.DeleteTeam(p, teamID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Team deleted",
	})
}

// ListTeamMembers lists a team's memberships.
// GET /api/teams/:id/members
func ListTeamMembers(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	teamID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	members, err := teamService.ListMembers(p, teamID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"members": members,
		"count":   len(members),
	})
}

// AddTeamMember adds a user to the team (owner/admin only).
// POST /api/teams/:id/members
func AddTeamMember(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)
	teamID, err := parseID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid team ID")
	}

	var req struct {
		UserID uint            `json:"user_id"`
		Role   models.TeamRole `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	member, err := teamService.AddMember(p, teamID, req.UserID, req.Role)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(201).JSON(fiber.Map{
		"success": true,
		"member":  member,
	})
}
