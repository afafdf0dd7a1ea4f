// models/project.go
package models

import "time"

// Project belongs to exactly one team. Project names are unique within a
// team but not globally.
type Project struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	TeamID      uint   `json:"team_id" gorm:"not null;uniqueIndex:idx_projects_team_name;index"`
	Team        *Team  `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	Name        string `json:"name" gorm:"not null;size:200;uniqueIndex:idx_projects_team_name"`
	Description string `json:"description" gorm:"type:text"`

	CreatedByID uint  `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`

	Memberships []ProjectMembership `json:"memberships,omitempty" gorm:"foreignKey:ProjectID"`
	Tasks       []Task              `json:"tasks,omitempty" gorm:"foreignKey:ProjectID"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
