package models

import "time"

// Post represents a post in the Ripple application.
type Post struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	UserID   uint   `gorm:"not null;index" json:"userId"`
	User     User   `gorm:"foreignKey:UserID" json:"user"`
	Content  string `gorm:"type:text" json:"text"`
	ImageURL string `json:"image"`
	// LikedBy and UnlikedBy are reactor id sets derived from the reactions
	// table at query time.
	LikedBy   []uint `gorm:"-" json:"likedBy"`
	UnlikedBy []uint `gorm:"-" json:"unlikedBy"`
	// LikesCount is not persisted; computed at query time
	LikesCount int `gorm:"->" json:"likesCount"`
	// CommentsCount is not persisted; computed at query time
	CommentsCount int       `gorm:"->" json:"commentsCount"`
	Comments      []Comment `gorm:"foreignKey:PostID" json:"comments"`
	CreatedAt     time.Time `json:"createdAt"`
}
