package models

import "time"

// Comment represents a comment on a post. Comments are append-only: they are
// never edited, and they outlive their author (deleting an account removes the
// account's posts with those posts' comments, but comments the account left on
// other users' posts stay).
type Comment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PostID    uint      `gorm:"not null;index" json:"postId"`
	UserID    uint      `gorm:"not null;index" json:"userId"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
	Content   string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}
