package models

import (
	"time"

	"gorm.io/gorm"
)

// Comment is either a top-level comment on a blog (ParentID nil) or a reply.
// Replies always point at a top-level ancestor: a reply to a reply is
// re-parented to the original top-level comment while ReplyToUserID keeps
// the actual addressee, so threads never exceed depth two.
//
// FromUserName/ToUserName are snapshots taken at creation time and are not
// updated when users rename themselves.
type Comment struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Content       string `gorm:"type:text;not null" json:"content"`
	UserID        uint   `gorm:"not null;index" json:"user_id"`
	User          User   `gorm:"foreignKey:UserID" json:"user"`
	BlogID        uint   `gorm:"not null;index" json:"blog_id"`
	ParentID      *uint  `gorm:"index" json:"parent_id"`
	ReplyToUserID *uint  `json:"reply_to_user_id"`
	FromUserName  string `gorm:"size:40" json:"from_user_name"`
	ToUserName    string `gorm:"size:40" json:"to_user_name"`
	// LikeCount equals the number of rows in comment_likes for this comment;
	// recomputed from that set after every like/unlike mutation.
	LikeCount int `gorm:"not null;default:0" json:"like_count"`
	// IsLiked indicates whether the requesting viewer liked this comment (computed)
	IsLiked   bool           `gorm:"-" json:"is_liked"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for GORM.
func (Comment) TableName() string {
	return "comments"
}

// IsTopLevel reports whether the comment is attached directly to a blog.
func (c *Comment) IsTopLevel() bool {
	return c.ParentID == nil
}

// CommentLike records one user's like on one comment. The pair is unique,
// which makes the like set idempotent under concurrent toggles.
type CommentLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like_pair" json:"user_id"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like_pair;index" json:"comment_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM.
func (CommentLike) TableName() string {
	return "comment_likes"
}

// CommentThread is one top-level comment with its flat reply list.
type CommentThread struct {
	*Comment
	Replies []*Comment `json:"replies"`
}
