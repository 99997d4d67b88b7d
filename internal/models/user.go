// Package models contains data structures for the application's domain models.
package models

import "time"

// User represents an account in the Ripple application.
//
// Rows are hard-deleted: account removal cascades in a single transaction and
// nothing is ever soft-deleted, so there is no DeletedAt column.
type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Name      string `gorm:"not null" json:"name"`
	Email     string `gorm:"uniqueIndex;not null" json:"email"`
	Password  string `gorm:"not null" json:"-"`
	Avatar    string `json:"avatar"`
	Bio       string `gorm:"type:text" json:"bio"`
	PushToken string `json:"pushToken,omitempty"`
	// Followers and Followings are id sets derived from the follow edges;
	// never persisted on the user row.
	Followers      []uint    `gorm:"-" json:"followers"`
	Followings     []uint    `gorm:"-" json:"followings"`
	FollowersCount int       `gorm:"->" json:"followersCount"`
	FollowingCount int       `gorm:"->" json:"followingCount"`
	PostCount      int       `gorm:"->" json:"postCount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserSummary is the trimmed author shape embedded in realtime events.
type UserSummary struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Summary returns the event-embeddable view of the user.
func (u *User) Summary() UserSummary {
	return UserSummary{ID: u.ID, Name: u.Name, Avatar: u.Avatar}
}
