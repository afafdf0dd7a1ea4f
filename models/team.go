// models/team.go
package models

import "time"

type Team struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name" gorm:"not null;size:200;index"`
	Description string `json:"description" gorm:"type:text"`

	// Creator is deletion-protected: a user cannot be removed while teams
	// they created still exist.
	CreatedByID uint  `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`

	Memberships []TeamMembership `json:"memberships,omitempty" gorm:"foreignKey:TeamID"`
	Projects    []Project        `json:"projects,omitempty" gorm:"foreignKey:TeamID"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Team) TableName() string {
	return "teams"
}
