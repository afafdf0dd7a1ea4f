package services_test

import (
	"path/filepath"
	"testing"

	"collabsphere/models"
	"collabsphere/services"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the same error
// translation the production connection uses, so duplicate-key handling
// behaves identically.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMembership{},
		&models.Project{},
		&models.ProjectMembership{},
		&models.Task{},
		&models.Comment{},
		&models.ActivityLog{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

type testEnv struct {
	DB         *gorm.DB
	Membership *services.MembershipService
	Activity   *services.ActivityService
	Teams      *services.TeamService
	Projects   *services.ProjectService
	Tasks      *services.TaskService
	Advisor    *services.AdvisorService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := newTestDB(t)
	membership := services.NewMembershipService(db)
	activity := services.NewActivityService(db)
	return &testEnv{
		DB:         db,
		Membership: membership,
		Activity:   activity,
		Teams:      services.NewTeamService(db, membership, activity),
		Projects:   services.NewProjectService(db, membership, activity),
		Tasks:      services.NewTaskService(db, membership, activity),
		Advisor:    services.NewAdvisorService(db, membership, activity),
	}
}

func (e *testEnv) createUser(t *testing.T, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com"}
	if err := e.DB.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func asPrincipal(u *models.User) models.Principal {
	return models.Principal{UserID: u.ID, Username: u.Username, Authenticated: true}
}

// countEvents counts trail rows of one event type scoped to a task.
func (e *testEnv) countEvents(t *testing.T, eventType models.ActivityEventType, taskID uint) int64 {
	t.Helper()

	var count int64
	err := e.DB.Model(&models.ActivityLog{}).
		Where("event_type = ? AND task_id = ?", eventType, taskID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count events: %v", err)
	}
	return count
}

// expectValidationError asserts err is a field-scoped validation error.
func expectValidationError(t *testing.T, err error, field string) {
	t.Helper()

	ve, ok := services.AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	if ve.Field != field {
		t.Fatalf("expected validation error on %q, got %q (%s)", field, ve.Field, ve.Message)
	}
}
