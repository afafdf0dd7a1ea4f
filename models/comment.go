// models/comment.go
package models

import "time"

type Comment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	TaskID   uint   `json:"task_id" gorm:"not null;index:idx_comments_task_created"`
	Task     *Task  `json:"task,omitempty" gorm:"foreignKey:TaskID;constraint:OnDelete:CASCADE"`
	AuthorID uint   `json:"author_id" gorm:"not null;index"`
	Author   *User  `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:RESTRICT"`
	Body     string `json:"body" gorm:"not null;type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comments_task_created"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string {
	return "comments"
}
