package models

import (
	"time"

	"gorm.io/gorm"
)

// User is an authenticated principal. Ledger accounts are keyed by the
// user's ID; a user may exist without a ledger account.
type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null"`
	Password     string `gorm:"not null"`
	Phone        string `gorm:"uniqueIndex;not null"`
	Role         string `gorm:"default:'user'"`
	TokenVersion int    `gorm:"default:1"`
	LastLoginAt  time.Time
}

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Caller identifies the authenticated principal of an operation.
type Caller struct {
	UserID uint
	Role   string
}

// IsAdmin reports whether the caller holds the administrator role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
