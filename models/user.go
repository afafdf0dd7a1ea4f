// models/user.go
package models

import (
	"time"
)

// User rows are provisioned by the external identity provider; this service
// only references them. No credential material is stored here.
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null;size:150" json:"username"`
	Email    string `gorm:"uniqueIndex;size:254" json:"email"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
