// services/membership_service.go - Membership Authorization Engine
package services

import (
	"collabsphere/models"

	"gorm.io/gorm"
)

// MembershipService answers "can principal P perform action A on resource R"
// over the two-level team/project role hierarchy. All checks are pure reads
// and fail closed: any lookup miss denies.
type MembershipService struct {
	db *gorm.DB
}

func NewMembershipService(db *gorm.DB) *MembershipService {
	return &MembershipService{db: db}
}

// TeamMembershipInfo is the result of a team membership lookup. Role is only
// meaningful when IsMember is true.
type TeamMembershipInfo struct {
	IsMember bool
	Role     models.TeamRole
}

// ProjectMembershipInfo is the result of a project membership lookup.
type ProjectMembershipInfo struct {
	IsMember bool
	Role     models.ProjectRole
}

// TeamMembership looks up the principal's membership on a team.
func (s *MembershipService) TeamMembership(p models.Principal, teamID uint) TeamMembershipInfo {
	if !p.Authenticated {
		return TeamMembershipInfo{}
	}

	var m models.TeamMembership
	err := s.db.Select("role").
		Where("team_id = ? AND user_id = ?", teamID, p.UserID).
		First(&m).Error
	if err != nil {
		return TeamMembershipInfo{}
	}

	return TeamMembershipInfo{IsMember: true, Role: m.Role}
}

// ProjectMembership looks up the principal's membership on a project.
func (s *MembershipService) ProjectMembership(p models.Principal, projectID uint) ProjectMembershipInfo {
	if !p.Authenticated {
		return ProjectMembershipInfo{}
	}

	var m models.ProjectMembership
	err := s.db.Select("role").
		Where("project_id = ? AND user_id = ?", projectID, p.UserID).
		First(&m).Error
	if err != nil {
		return ProjectMembershipInfo{}
	}

	return ProjectMembershipInfo{IsMember: true, Role: m.Role}
}

// CanReadTeam reports whether the principal holds any membership on the team.
func (s *MembershipService) CanReadTeam(p models.Principal, teamID uint) bool {
	return s.TeamMembership(p, teamID).IsMember
}

// CanAdminTeam reports whether the principal is a team owner or admin.
func (s *MembershipService) CanAdminTeam(p models.Principal, teamID uint) bool {
	info := s.TeamMembership(p, teamID)
	return info.IsMember && (info.Role == models.TeamRoleOwner || info.Role == models.TeamRoleAdmin)
}

// CanReadProject reports whether the principal holds any membership on the
// project.
func (s *MembershipService) CanReadProject(p models.Principal, projectID uint) bool {
	return s.ProjectMembership(p, projectID).IsMember
}

// CanManageProject reports whether the principal is a project manager, or,
// as a fallback, an owner/admin of the project's owning team. The fallback
// does not require a project-level membership. A nonexistent project denies.
func (s *MembershipService) CanManageProject(p models.Principal, projectID uint) bool {
	info := s.ProjectMembership(p, projectID)
	if info.IsMember && info.Role == models.ProjectRoleManager {
		return true
	}

	var project models.Project
	err := s.db.Select("team_id").Where("id = ?", projectID).First(&project).Error
	if err != nil {
		return false
	}

	return s.CanAdminTeam(p, project.TeamID)
}
