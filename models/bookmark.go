package models

import (
	"time"
)

// Bookmark is one entry of a user's bookmarkedPosts set.
type Bookmark struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_user_bookmark"`
	PostID    uint      `gorm:"not null;uniqueIndex:idx_user_bookmark"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User User `gorm:"foreignKey:UserID"`
	Post Post `gorm:"foreignKey:PostID"`
}
