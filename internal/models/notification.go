package models

import "time"

// NotificationType classifies what triggered a notification.
type NotificationType string

const (
	// NotificationComment is sent to a blog owner when someone comments.
	NotificationComment NotificationType = "comment"
	// NotificationReply is sent to the addressee of a reply.
	NotificationReply NotificationType = "reply"
	// NotificationLike is sent to a comment author on the like-add transition.
	NotificationLike NotificationType = "like"
	// NotificationFollow is sent to a user who gained a follower.
	NotificationFollow NotificationType = "follow"
	// NotificationSystem is reserved for operator announcements.
	NotificationSystem NotificationType = "system"
)

// NotificationPriority orders notifications in client inboxes.
type NotificationPriority string

const (
	NotificationPriorityLow    NotificationPriority = "low"
	NotificationPriorityNormal NotificationPriority = "normal"
	NotificationPriorityHigh   NotificationPriority = "high"
)

// Notification is created only as a side effect of another entity's
// mutation. Recipients may toggle IsRead but never mutate content.
// Rows past ExpiresAt are purged opportunistically.
type Notification struct {
	ID          uint                 `gorm:"primaryKey" json:"id"`
	RecipientID uint                 `gorm:"not null;index" json:"recipient_id"`
	SenderID    *uint                `gorm:"index" json:"sender_id"`
	Type        NotificationType     `gorm:"type:varchar(20);not null;index" json:"type"`
	Title       string               `gorm:"size:200;not null" json:"title"`
	Content     string               `gorm:"type:text" json:"content"`
	BlogID      *uint                `gorm:"index" json:"blog_id,omitempty"`
	CommentID   *uint                `gorm:"index" json:"comment_id,omitempty"`
	Priority    NotificationPriority `gorm:"type:varchar(10);not null;default:'normal'" json:"priority"`
	IsRead      bool                 `gorm:"not null;default:false;index" json:"is_read"`
	ReadAt      *time.Time           `json:"read_at,omitempty"`
	ExpiresAt   *time.Time           `gorm:"index" json:"expires_at,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`

	Recipient User  `gorm:"foreignKey:RecipientID" json:"recipient,omitempty"`
	Sender    *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

// TableName specifies the table name for GORM.
func (Notification) TableName() string {
	return "notifications"
}
