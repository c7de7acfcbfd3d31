// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// Role determines a user's authorization level.
type Role string

const (
	// RoleUser is the default role for registered users.
	RoleUser Role = "user"
	// RoleAdmin grants moderation privileges.
	RoleAdmin Role = "admin"
)

// User represents a registered account.
// FollowingCount and FollowersCount are denormalized from the follows table
// and maintained by the relationship service, never recomputed on read.
type User struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	Username       string         `gorm:"size:40;uniqueIndex;not null" json:"username"`
	Email          string         `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Password       string         `gorm:"not null" json:"-"`
	Role           Role           `gorm:"type:varchar(10);not null;default:'user'" json:"role"`
	IsActive       bool           `gorm:"not null;default:true" json:"is_active"`
	Bio            string         `json:"bio"`
	Avatar         string         `json:"avatar"`
	FollowingCount int            `gorm:"not null;default:0" json:"following_count"`
	FollowersCount int            `gorm:"not null;default:0" json:"followers_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserSummary is the compact user shape embedded in relationship listings.
type UserSummary struct {
	ID          uint   `json:"id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar"`
	IsFollowing bool   `json:"is_following"`
}
