package models

import "time"

// Follow is a directed edge recording that FollowerID follows FollowedID.
// The pair is unique; symmetry of the denormalized counters on both users
// is maintained by the relationship service inside one transaction.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"follower_id"`
	FollowedID uint      `gorm:"not null;uniqueIndex:idx_follow_pair;index" json:"followed_id"`
	CreatedAt  time.Time `json:"created_at"`

	Follower User `gorm:"foreignKey:FollowerID" json:"follower,omitempty"`
	Followed User `gorm:"foreignKey:FollowedID" json:"followed,omitempty"`
}

// TableName specifies the table name for GORM.
func (Follow) TableName() string {
	return "follows"
}

// RelationshipInfo is the full follow/follower view for one user.
type RelationshipInfo struct {
	FollowingCount int           `json:"following_count"`
	FollowersCount int           `json:"followers_count"`
	Following      []UserSummary `json:"following"`
	Followers      []UserSummary `json:"followers"`
}
