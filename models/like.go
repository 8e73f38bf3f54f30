package models

import (
	"time"
)

// Like marks membership of a user in a post's likedBy set. The composite
// unique index enforces the set semantics: at most one row per (post, user).
type Like struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_post_like"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_post_like"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
