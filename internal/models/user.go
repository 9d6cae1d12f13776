package models

import "time"

// User roles.
const (
	RoleAdmin     = "admin"
	RoleInstitute = "institute"
	RoleStudent   = "student"
)

// User is an authenticated account. Role-specific profile data lives on
// Student or Institute keyed by UserID.
type User struct {
	UserID       string    `gorm:"column:userid;primaryKey;size:64" json:"userid"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"password_hash"`
	Role         string    `gorm:"size:16;not null" json:"role"`
	Phone        string    `gorm:"size:32" json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
