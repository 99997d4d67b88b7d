package models

import "time"

// Reaction kinds. A user holds at most one reaction per post, so liking and
// disliking are mutually exclusive by construction.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
)

// Reaction records a single user's like or dislike of a post. The unique
// index on (user_id, post_id) is what keeps the likedBy/unlikedBy sets
// disjoint even under concurrent requests.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_reaction_user_post" json:"userId"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_reaction_user_post;index" json:"postId"`
	Kind      string    `gorm:"not null" json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}
