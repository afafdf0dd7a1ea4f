// services/project_service.go - Project CRUD and membership
package services

import (
	"errors"
	"fmt"
	"strings"

	"collabsphere/models"

	"gorm.io/gorm"
)

type ProjectService struct {
	db         *gorm.DB
	membership *MembershipService
	activity   *ActivityService
}

func NewProjectService(db *gorm.DB, membership *MembershipService, activity *ActivityService) *ProjectService {
	return &ProjectService{db: db, membership: membership, activity: activity}
}

// CreateProject creates a project under a team; the creator becomes its
// manager in the same transaction. Any team member may create projects.
func (s *ProjectService) CreateProject(p models.Principal, teamID uint, name, description string) (*models.Project, error) {
	if !s.membership.CanReadTeam(p, teamID) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "Project name is required.")
	}

	project := &models.Project{
		TeamID:      teamID,
		Name:        name,
		Description: description,
		CreatedByID: p.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(project).Error; err != nil {
			return err
		}

		member := &models.ProjectMembership{
			ProjectID: project.ID,
			UserID:    p.UserID,
			Role:      models.ProjectRoleManager,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("name", "A project with this name already exists in the team.")
		}
		return nil, err
	}

	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventProjectCreated,
		Message:   fmt.Sprintf("Project created: %s", project.Name),
		TeamID:    &teamID,
		ProjectID: &project.ID,
	})

	return project, nil
}

// GetProject retrieves a project the principal is a member of.
func (s *ProjectService) GetProject(p models.Principal, projectID uint) (*models.Project, error) {
	if !s.membership.CanReadProject(p, projectID) {
		return nil, ErrPermissionDenied
	}

	var project models.Project
	err := s.db.Preload("CreatedBy").First(&project, projectID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListProjects lists a team's projects, restricted to team members.
func (s *ProjectService) ListProjects(p models.Principal, teamID uint, query string) ([]models.Project, error) {
	if !s.membership.CanReadTeam(p, teamID) {
		return nil, ErrPermissionDenied
	}

	q := s.db.Where("team_id = ?", teamID)
	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var projects []models.Project
	err := q.Order("created_at DESC").Find(&projects).Error
	return projects, err
}

// UpdateProject updates name/description. Requires manage rights (project
// manager, or owner/admin of the owning team).
func (s *ProjectService) UpdateProject(p models.Principal, projectID uint, name, description string) (*models.Project, error) {
	if !s.membership.CanManageProject(p, projectID) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "Project name is required.")
	}

	err := s.db.Model(&models.Project{}).Where("id = ?", projectID).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("name", "A project with this name already exists in the team.")
		}
		return nil, err
	}

	var project models.Project
	if err := s.db.First(&project, projectID).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// DeleteProject hard-deletes a project; tasks and memberships cascade.
func (s *ProjectService) DeleteProject(p models.Principal, projectID uint) error {
	if !s.membership.CanManageProject(p, projectID) {
		return ErrPermissionDenied
	}
	return s.db.Delete(&models.Project{}, projectID).Error
}

// ListMembers lists a project's memberships, oldest first.
func (s *ProjectService) ListMembers(p models.Principal, projectID uint) ([]models.ProjectMembership, error) {
	if !s.membership.CanReadProject(p, projectID) {
		return nil, ErrPermissionDenied
	}

	var members []models.ProjectMembership
	err := s.db.Where("project_id = ?", projectID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

// AddMember adds a user to the project. Requires manage rights. The user
// must already hold a team membership on the project's owning team.
func (s *ProjectService) AddMember(p models.Principal, projectID, userID uint, role models.ProjectRole) (*models.ProjectMembership, error) {
	if !s.membership.CanManageProject(p, projectID) {
		return nil, ErrPermissionDenied
	}

	if role == "" {
		role = models.ProjectRoleContributor
	}
	if !models.ValidProjectRole(role) {
		return nil, NewValidationError("role", "Invalid project role.")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, NewValidationError("user_id", "User not found.")
	}

	var project models.Project
	if err := s.db.Select("id", "team_id").First(&project, projectID).Error; err != nil {
		return nil, ErrNotFound
	}

	var teamCount int64
	s.db.Model(&models.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", project.TeamID, userID).
		Count(&teamCount)
	if teamCount == 0 {
		return nil, NewValidationError("user_id", "User must be a member of the team before joining the project.")
	}

	member := &models.ProjectMembership{
		ProjectID: projectID,
		UserID:    userID,
		Role:      role,
	}
	if err := s.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("user_id", "User is already a member of this project.")
		}
		return nil, err
	}

	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventProjectMemberAdded,
		Message:   fmt.Sprintf("Added user %d to project", userID),
		TeamID:    &project.TeamID,
		ProjectID: &projectID,
		Metadata:  map[string]interface{}{"user_id": userID, "role": string(role)},
	})

	return member, nil
}
