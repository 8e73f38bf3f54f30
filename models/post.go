package models

import (
	"time"
)

// MaxPostTextLength bounds post and comment bodies alike.
const MaxPostTextLength = 500

// PostCategories is the fixed category enumeration accepted on post creation.
var PostCategories = []string{
	"general",
	"technology",
	"music",
	"sports",
	"movies",
	"food",
	"travel",
}

func IsValidCategory(category string) bool {
	for _, c := range PostCategories {
		if c == category {
			return true
		}
	}
	return false
}

type Post struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID"`
	Text      string    `json:"text" gorm:"type:text;not null"`
	Category  string    `json:"category" gorm:"not null;type:varchar(20)"`
	ImageURL  string    `json:"image_url,omitempty"`
	Comments  []Comment `json:"-" gorm:"foreignKey:PostID"`
	Likes     []Like    `json:"-" gorm:"foreignKey:PostID"`
}
