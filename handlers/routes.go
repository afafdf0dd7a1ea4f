// handlers/routes.go - API route registration
package handlers

import (
	"time"

	"collabsphere/middleware"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes mounts the API surface on the app. Everything under /api
// requires a valid bearer token; /health does not.
func RegisterRoutes(app *fiber.App) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
		})
	})

	api := app.Group("/api", middleware.AuthMiddleware)

	teams := api.Group("/teams")
	teams.Post("/", CreateTeam)
	teams.Get("/", ListTeams)
	teams.Get("/:id", GetTeam)
	teams.Put("/:id", UpdateTeam)
	teams.Delete("/:id", DeleteTeam)
	teams.Get("/:id/members", ListTeamMembers)
	teams.Post("/:id/members", AddTeamMember)
	teams.Get("/:id/projects", ListProjects)
	teams.Post("/:id/projects", CreateProject)

	projects := api.Group("/projects")
	projects.Get("/:id", GetProject)
	projects.Put("/:id", UpdateProject)
	projects.Delete("/:id", DeleteProject)
	projects.Get("/:id/members", ListProjectMembers)
	projects.Post("/:id/members", AddProjectMember)
	projects.Get("/:id/tasks", ListTasks)
	projects.Post("/:id/tasks", CreateTask)

	tasks := api.Group("/tasks")
	tasks.Get("/:id", GetTask)
	tasks.Put("/:id", UpdateTask)
	tasks.Delete("/:id", DeleteTask)
	tasks.Get("/:id/comments", ListComments)
	tasks.Post("/:id/comments", AddComment)

	api.Get("/activity", ListActivity)

	ai := api.Group("/ai")
	ai.Post("/priority-suggest", SuggestPriority)
	ai.Post("/delay-risk", PredictDelayRisk)
}
