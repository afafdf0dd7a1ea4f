// models/team_membership.go
package models

import "time"

type TeamRole string

const (
	TeamRoleOwner  TeamRole = "owner"
	TeamRoleAdmin  TeamRole = "admin"
	TeamRoleMember TeamRole = "member"
)

// ValidTeamRole reports whether r is one of the closed team role set.
func ValidTeamRole(r TeamRole) bool {
	switch r {
	case TeamRoleOwner, TeamRoleAdmin, TeamRoleMember:
		return true
	}
	return false
}

// TeamMembership links a user to a team with a role. At most one membership
// per (team, user) pair, enforced by a composite unique index.
type TeamMembership struct {
	ID     uint     `json:"id" gorm:"primaryKey"`
	TeamID uint     `json:"team_id" gorm:"not null;uniqueIndex:idx_team_memberships_team_user;index"`
	Team   *Team    `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	UserID uint     `json:"user_id" gorm:"not null;uniqueIndex:idx_team_memberships_team_user;index"`
	User   *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Role   TeamRole `json:"role" gorm:"not null;default:'member';size:20"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (TeamMembership) TableName() string {
	return "team_memberships"
}
