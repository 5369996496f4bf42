package model

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User represents an account in the store. Accounts are created on
// registration and read back at login; they are never updated or
// deleted afterwards.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"not null;size:100"`
	Email        string `gorm:"unique;not null"`
	PasswordHash string `gorm:"not null"`
	Address      string `gorm:"size:255"`
	Contact      string `gorm:"size:20"`
	Role         string `gorm:"default:'user';not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
