package models

import (
	"time"
)

type CommentLike struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	CommentID uint      `gorm:"not null;uniqueIndex:idx_comment_like"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_comment_like"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	User    User    `gorm:"foreignKey:UserID"`
	Comment Comment `gorm:"foreignKey:CommentID"`
}
