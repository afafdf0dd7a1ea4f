// database/migrate.go - Database Migration Runner
package database

import (
	"log"

	"collabsphere/models"
)

// RunMigrations runs all database migrations
func RunMigrations() {
	db := GetDB()
	log.Println("🔄 Running database migrations...")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMembership{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
	); err != nil {
		log.Fatalf("❌ Failed to run migrations: %v", err)
	}

	createIndexes()

	log.Println("✅ All migrations completed successfully")
}

// createIndexes creates supplementary indexes that AutoMigrate does not
// derive from struct tags (composite scans used by the hot list endpoints).
func createIndexes() {
	db := GetDB()

	db.Exec("CREATE INDEX IF NOT EXISTS idx_team_memberships_user ON team_memberships(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_project_memberships_user ON project_memberships(user_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_due_date ON tasks(due_date)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assignee_id)")
	db.Exec("CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs(created_at DESC)")
}
