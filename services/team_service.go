// services/team_service.go - Team CRUD and membership
package services

import (
	"errors"
	"fmt"
	"strings"

	"collabsphere/models"

	"gorm.io/gorm"
)

type TeamService struct {
	db         *gorm.DB
	membership *MembershipService
	activity   *ActivityService
}

func NewTeamService(db *gorm.DB, membership *MembershipService, activity *ActivityService) *TeamService {
	return &TeamService{db: db, membership: membership, activity: activity}
}

// CreateTeam creates a team and its owner membership in one transaction,
// then records the audit event (outside the transaction: its failure must
// not unwind the creation).
func (s *TeamService) CreateTeam(p models.Principal, name, description string) (*models.Team, error) {
	if !p.Authenticated {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "Team name is required.")
	}

	team := &models.Team{
		Name:        name,
		Description: description,
		CreatedByID: p.UserID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		member := &models.TeamMembership{
			TeamID: team.ID,
			UserID: p.UserID,
			Role:   models.TeamRoleOwner,
		}
		return tx.Create(member).Error
	})
	if err != nil {
		return nil, err
	}

	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventTeamCreated,
		Message:   fmt.Sprintf("Team created: %s", team.Name),
		TeamID:    &team.ID,
	})

	return team, nil
}

// GetTeam retrieves a team the principal is a member of. A membership miss
// denies without revealing whether the team exists.
func (s *TeamService) GetTeam(p models.Principal, teamID uint) (*models.Team, error) {
	if !s.membership.CanReadTeam(p, teamID) {
		return nil, ErrPermissionDenied
	}

	var team models.Team
	err := s.db.Preload("CreatedBy").First(&team, teamID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &team, nil
}

// ListTeams returns the teams the principal belongs to, optionally filtered
// by a free-text query over name and description.
func (s *TeamService) ListTeams(p models.Principal, query string) ([]models.Team, error) {
	if !p.Authenticated {
		return nil, ErrPermissionDenied
	}

	q := s.db.
		Joins("JOIN team_memberships ON team_memberships.team_id = teams.id").
		Where("team_memberships.user_id = ?", p.UserID)

	if query != "" {
		like := "%" + strings.ToLower(query) + "%"
		q = q.Where("LOWER(teams.name) LIKE ? OR LOWER(teams.description) LIKE ?", like, like)
	}

	var teams []models.Team
	err := q.Order("teams.created_at DESC").Find(&teams).Error
	return teams, err
}

// UpdateTeam updates name/description (owner/admin only).
func (s *TeamService) UpdateTeam(p models.Principal, teamID uint, name, description string) (*models.Team, error) {
	if !s.membership.CanAdminTeam(p, teamID) {
		return nil, ErrPermissionDenied
	}
	if strings.TrimSpace(name) == "" {
		return nil, NewValidationError("name", "Team name is required.")
	}

	err := s.db.Model(&models.Team{}).Where("id = ?", teamID).
		Updates(map[string]interface{}{
			"name":        name,
			"description": description,
		}).Error
	if err != nil {
		return nil, err
	}

	var team models.Team
	if err := s.db.First(&team, teamID).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// DeleteTeam hard-deletes a team; memberships, projects, tasks, and trail
// entries cascade at the store level. Owner/admin only.
func (s *TeamService) DeleteTeam(p models.Principal, teamID uint) error {
	if !s.membership.CanAdminTeam(p, teamID) {
		return ErrPermissionDenied
	}
	return s.db.Delete(&models.Team{}, teamID).Error
}

// ListMembers lists a team's memberships, oldest first.
func (s *TeamService) ListMembers(p models.Principal, teamID uint) ([]models.TeamMembership, error) {
	if !s.membership.CanReadTeam(p, teamID) {
		return nil, ErrPermissionDenied
	}

	var members []models.TeamMembership
	err := s.db.Where("team_id = ?", teamID).
		Preload("User").
		Order("created_at ASC").
		Find(&members).Error
	return members, err
}

// AddMember adds a user to the team (owner/admin only). A duplicate
// membership is a validation error; the original row is untouched.
func (s *TeamService) AddMember(p models.Principal, teamID, userID uint, role models.TeamRole) (*models.TeamMembership, error) {
	if !s.membership.CanAdminTeam(p, teamID) {
		return nil, ErrPermissionDenied
	}

	if role == "" {
		role = models.TeamRoleMember
	}
	if !models.ValidTeamRole(role) {
		return nil, NewValidationError("role", "Invalid team role.")
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return nil, NewValidationError("user_id", "User not found.")
	}

	member := &models.TeamMembership{
		TeamID: teamID,
		UserID: userID,
		Role:   role,
	}
	if err := s.db.Create(member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, NewValidationError("user_id", "User is already a member of this team.")
		}
		return nil, err
	}

	s.activity.Record(ActivityEntry{
		Actor:     p,
		EventType: models.EventTeamMemberAdded,
		Message:   fmt.Sprintf("Added user %d to team", userID),
		TeamID:    &teamID,
		Metadata:  map[string]interface{}{"user_id": userID, "role": string(role)},
	})

	return member, nil
}
