// models/project_membership.go
package models

import "time"

type ProjectRole string

const (
	ProjectRoleManager     ProjectRole = "manager"
	ProjectRoleContributor ProjectRole = "contributor"
	ProjectRoleViewer      ProjectRole = "viewer"
)

// ValidProjectRole reports whether r is one of the closed project role set.
func ValidProjectRole(r ProjectRole) bool {
	switch r {
	case ProjectRoleManager, ProjectRoleContributor, ProjectRoleViewer:
		return true
	}
	return false
}

// ProjectMembership links a user to a project. The user must already hold a
// TeamMembership on the project's team; that rule lives in the service layer,
// the store only enforces uniqueness per (project, user).
type ProjectMembership struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	ProjectID uint        `json:"project_id" gorm:"not null;uniqueIndex:idx_project_memberships_project_user;index"`
	Project   *Project    `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	UserID    uint        `json:"user_id" gorm:"not null;uniqueIndex:idx_project_memberships_project_user;index"`
	User      *User       `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role      ProjectRole `json:"role" gorm:"not null;default:'contributor';size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ProjectMembership) TableName() string {
	return "project_memberships"
}
