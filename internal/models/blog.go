package models

import (
	"time"

	"gorm.io/gorm"
)

// Blog represents a blog post. The owner is immutable after creation.
// ViewCount is incremented once per detail fetch; FavoriteCount is kept in
// step with the favorites table by paired increment/decrement at
// favorite/unfavorite time, never recomputed.
type Blog struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Title         string         `gorm:"size:200;not null" json:"title"`
	Content       string         `gorm:"type:text;not null" json:"content"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          User           `gorm:"foreignKey:UserID" json:"user"`
	ViewCount     int            `gorm:"not null;default:0" json:"view_count"`
	FavoriteCount int            `gorm:"not null;default:0" json:"favorite_count"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Blog) TableName() string {
	return "blogs"
}

// Favorite records that a user favorited a blog. The pair is unique.
type Favorite struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_favorite_pair" json:"user_id"`
	BlogID    uint      `gorm:"not null;uniqueIndex:idx_favorite_pair;index" json:"blog_id"`
	CreatedAt time.Time `json:"created_at"`

	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Blog Blog `gorm:"foreignKey:BlogID" json:"blog,omitempty"`
}

// TableName specifies the table name for GORM.
func (Favorite) TableName() string {
	return "favorites"
}
