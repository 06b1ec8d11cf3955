package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
)

type User struct {
	ID       uint     `json:"id" gorm:"primaryKey"`
	FullName string   `json:"full_name" gorm:"not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	Password string   `json:"-" gorm:"not null;size:255"` // bcrypt hash, never serialized
	Role     UserRole `json:"role" gorm:"default:USER;size:10"`

	// Set when the email has been confirmed
	Verified *time.Time `json:"verified"`

	Preferences datatypes.JSON `json:"preferences"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
