// models/task.go
package models

import "time"

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusBlocked    TaskStatus = "blocked"
	TaskStatusDone       TaskStatus = "done"
)

// ValidTaskStatus reports whether s is one of the closed status set.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusBlocked, TaskStatusDone:
		return true
	}
	return false
}

// TaskPriority is an ordered scale; comparisons rely on the numeric values.
type TaskPriority int

const (
	TaskPriorityLow    TaskPriority = 1
	TaskPriorityMedium TaskPriority = 2
	TaskPriorityHigh   TaskPriority = 3
	TaskPriorityUrgent TaskPriority = 4
)

// ValidTaskPriority reports whether p is one of the closed priority set.
func ValidTaskPriority(p TaskPriority) bool {
	return p >= TaskPriorityLow && p <= TaskPriorityUrgent
}

// Task is a work item within a project.
//
// CompletedAt is owned by the lifecycle coordinator: it is set on the first
// transition into done and never cleared when the status leaves done again.
type Task struct {
	ID          uint         `json:"id" gorm:"primaryKey"`
	ProjectID   uint         `json:"project_id" gorm:"not null;index;index:idx_tasks_project_status;index:idx_tasks_project_priority"`
	Project     *Project     `json:"project,omitempty" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`
	Title       string       `json:"title" gorm:"not null;size:250"`
	Description string       `json:"description" gorm:"type:text"`
	Status      TaskStatus   `json:"status" gorm:"not null;default:'todo';size:20;index:idx_tasks_project_status"`
	Priority    TaskPriority `json:"priority" gorm:"not null;default:2;index:idx_tasks_project_priority"`

	CreatedByID uint  `json:"created_by_id" gorm:"not null;index"`
	CreatedBy   *User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT"`
	AssigneeID  *uint `json:"assignee_id" gorm:"index"`
	Assignee    *User `json:"assignee,omitempty" gorm:"foreignKey:AssigneeID;constraint:OnDelete:SET NULL"`

	DueDate     *time.Time `json:"due_date" gorm:"index"`
	StartDate   *time.Time `json:"start_date"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}
