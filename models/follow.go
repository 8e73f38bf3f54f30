package models

import (
	"time"
)

// Follow is one edge of the follow graph. A single row is visible from both
// directions (follower's following set, followee's followers set), so writing
// or deleting it keeps the two sets consistent in one statement.
type Follow struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"`
	FollowerUserID  uint      `gorm:"not null;uniqueIndex:idx_follow_pair"`
	FollowingUserID uint      `gorm:"not null;uniqueIndex:idx_follow_pair"`
	CreatedAt       time.Time `gorm:"autoCreateTime"`

	FollowerUser  User `gorm:"foreignKey:FollowerUserID"`
	FollowingUser User `gorm:"foreignKey:FollowingUserID"`
}
