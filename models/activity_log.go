// models/activity_log.go
package models

import (
	"time"

	"gorm.io/datatypes"
)

type ActivityEventType string

const (
	EventTeamCreated          ActivityEventType = "team_created"
	EventTeamMemberAdded      ActivityEventType = "team_member_added"
	EventProjectCreated       ActivityEventType = "project_created"
	EventProjectMemberAdded   ActivityEventType = "project_member_added"
	EventTaskCreated          ActivityEventType = "task_created"
	EventTaskUpdated          ActivityEventType = "task_updated"
	EventTaskStatusChanged    ActivityEventType = "task_status_changed"
	EventTaskCommented        ActivityEventType = "task_commented"
	EventAIPrioritySuggested  ActivityEventType = "ai_priority_suggested"
	EventAIDelayRiskPredicted ActivityEventType = "ai_delay_risk_predicted"
)

// ActivityLog is an append-only audit trail row. Entries are immutable once
// written; the only way a row disappears is a cascade from a deleted parent.
type ActivityLog struct {
	ID        uint              `json:"id" gorm:"primaryKey"`
	ActorID   *uint             `json:"actor_id" gorm:"index"`
	Actor     *User             `json:"actor,omitempty" gorm:"foreignKey:ActorID;constraint:OnDelete:SET NULL"`
	EventType ActivityEventType `json:"event_type" gorm:"not null;size:50;index:idx_activity_logs_event_created"`
	Message   string            `json:"message" gorm:"type:text"`

	TeamID    *uint    `json:"team_id" gorm:"index:idx_activity_logs_team_created"`
	Team      *Team    `json:"team,omitempty" gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE"`
	ProjectID *uint    `json:"project_id" gorm:"index:idx_activity_logs_project_created"`
	Project   *Project `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	TaskID    *uint    `json:"task_id" gorm:"index:idx_activity_logs_task_created"`
	Task      *Task    `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`

	Metadata datatypes.JSONMap `json:"metadata"`

	CreatedAt time.Time `json:"created_at" gorm:"index;index:idx_activity_logs_event_created;index:idx_activity_logs_team_created;index:idx_activity_logs_project_created;index:idx_activity_logs_task_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
