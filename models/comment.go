package models

import (
	"time"
)

type Comment struct {
	ID        uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time     `json:"created_at"`
	PostID    uint          `json:"post_id" gorm:"not null;index"`
	Post      Post          `json:"-" gorm:"foreignKey:PostID"`
	UserID    uint          `json:"user_id" gorm:"not null"`
	User      User          `json:"-" gorm:"foreignKey:UserID"`
	Text      string        `json:"text" gorm:"type:text;not null"`
	Likes     []CommentLike `json:"-" gorm:"foreignKey:CommentID"`
}
