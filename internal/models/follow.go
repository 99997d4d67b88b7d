package models

import "time"

// Follow is a directed edge in the social graph: FollowerID follows
// FolloweeID. The relation is toggled as a single row inside one transaction,
// so the two derived views (a user's followings and the target's followers)
// can never disagree.
type Follow struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FollowerID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followerId"`
	FolloweeID uint      `gorm:"not null;uniqueIndex:idx_follow_edge;index" json:"followeeId"`
	CreatedAt  time.Time `json:"createdAt"`
}
