// cmd/seed - seed a demo workspace
//
// Creates two users, a team, a project, and a handful of tasks so a fresh
// database has something to browse. Safe to re-run: existing usernames are
// reused.
package main

import (
	"log"
	"time"

	"collabsphere/database"
	"collabsphere/models"
	"collabsphere/services"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()
	db := database.GetDB()

	alice := upsertUser(db, "alice", "alice@example.com")
	bob := upsertUser(db, "bob", "bob@example.com")

	membership := services.NewMembershipService(db)
	activity := services.NewActivityService(db)
	teams := services.NewTeamService(db, membership, activity)
	projects := services.NewProjectService(db, membership, activity)
	tasks := services.NewTaskService(db, membership, activity)

	principal := models.Principal{UserID: alice.ID, Username: alice.Username, Authenticated: true}

	team, err := teams.CreateTeam(principal, "Demo Team", "Seeded workspace")
	if err != nil {
		log.Fatal("Failed to create team:", err)
	}
	if _, err := teams.AddMember(principal, team.ID, bob.ID, models.TeamRoleMember); err != nil {
		log.Fatal("Failed to add member:", err)
	}

	project, err := projects.CreateProject(principal, team.ID, "Launch", "Product launch checklist")
	if err != nil {
		log.Fatal("Failed to create project:", err)
	}
	if _, err := projects.AddMember(principal, project.ID, bob.ID, models.ProjectRoleContributor); err != nil {
		log.Fatal("Failed to add project member:", err)
	}

	due := time.Now().Add(48 * time.Hour)
	seedTasks := []services.TaskCreateInput{
		{Title: "Draft announcement", Description: "Blog post and changelog", AssigneeID: &bob.ID, DueDate: &due},
		{Title: "URGENT: fix signup flow", Description: "Customer reported blocker", Priority: models.TaskPriorityUrgent},
		{Title: "Update pricing page", Status: models.TaskStatusInProgress},
	}
	for _, in := range seedTasks {
		if _, err := tasks.CreateTask(principal, project.ID, in); err != nil {
			log.Fatal("Failed to create task:", err)
		}
	}

	log.Printf("✅ Seeded team=%d project=%d (users alice=%d bob=%d)", team.ID, project.ID, alice.ID, bob.ID)
}

func upsertUser(db *gorm.DB, username, email string) *models.User {
	user := &models.User{Username: username, Email: email}
	if err := db.Where("username = ?", username).FirstOrCreate(user).Error; err != nil {
		log.Fatal("Failed to upsert user:", err)
	}
	return user
}
