package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `gorm:"not null" json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Password  string    `json:"-"` // bcrypt hash, never serialized
	Bio       string    `json:"bio,omitempty"`
	Website   string    `json:"website,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`

	// The followers/following/bookmarkedPosts sets live in the follows and
	// bookmarks tables; see models.Follow and models.Bookmark.
	Posts    []Post    `json:"-" gorm:"foreignKey:UserID"`
	Comments []Comment `json:"-" gorm:"foreignKey:UserID"`
}
