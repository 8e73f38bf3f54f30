package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"gorm.io/gorm"
)

type StandardResponse struct {
	Success    bool            `json:"success"`
	Data       interface{}     `json:"data,omitempty"`
	Pagination *PaginationMeta `json:"pagination,omitempty"`
	Message    string          `json:"message,omitempty"`
}

type PaginationMeta struct {
	CurrentPage int   `json:"currentPage"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
	TotalPages  int   `json:"totalPages"`
}

// respondError translates an apperror into the wire shape callers branch on:
// validation failures carry the field->message map verbatim, everything else
// a single error string under the status code of its class.
func respondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		if appErr.Type == apperror.Validation {
			c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Fields})
			return
		}
		c.JSON(appErr.StatusCode(), gin.H{"error": appErr.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error. Something went wrong."})
}

// PostView is a post row with its author's display fields attached.
type PostView struct {
	ID            uint      `json:"id"`
	Text          string    `json:"text"`
	Category      string    `json:"category"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	UserID        uint      `json:"userId"`
	Username      string    `json:"username"`
	FullName      string    `json:"fullName"`
	Avatar        string    `json:"avatar,omitempty"`
	LikesCount    int64     `json:"likesCount"`
	CommentsCount int64     `json:"commentsCount"`
	LikedBy       []uint    `json:"likedBy,omitempty" gorm:"-"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Subselects instead of joins for the counts so the query runs unchanged on
// Postgres and on the SQLite test databases.
const postViewSelect = `
	posts.id,
	posts.text,
	posts.category,
	posts.image_url,
	posts.user_id,
	users.username,
	users.full_name,
	users.avatar,
	(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) as likes_count,
	(SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) as comments_count,
	posts.created_at,
	posts.updated_at`

func postViewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("posts").
		Select(postViewSelect).
		Joins("JOIN users ON posts.user_id = users.id")
}

func fetchPostView(db *gorm.DB, postID uint) (*PostView, error) {
	var view PostView
	if err := postViewQuery(db).Where("posts.id = ?", postID).Scan(&view).Error; err != nil {
		return nil, err
	}
	if view.ID == 0 {
		return nil, apperror.NewNotFound("Post does not exist.")
	}
	view.LikedBy = postLikedBy(db, view.ID)
	return &view, nil
}

// CommentView is a comment row with its author attached.
type CommentView struct {
	ID        uint      `json:"id"`
	PostID    uint      `json:"postId"`
	Text      string    `json:"text"`
	UserID    uint      `json:"userId"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar,omitempty"`
	LikedBy   []uint    `json:"likedBy" gorm:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

const commentViewSelect = `
	comments.id,
	comments.post_id,
	comments.text,
	comments.user_id,
	users.username,
	users.full_name,
	users.avatar,
	comments.created_at`

func commentViewQuery(db *gorm.DB) *gorm.DB {
	return db.Table("comments").
		Select(commentViewSelect).
		Joins("JOIN users ON comments.user_id = users.id")
}

func fetchCommentView(db *gorm.DB, commentID uint) (*CommentView, error) {
	var view CommentView
	if err := commentViewQuery(db).Where("comments.id = ?", commentID).Scan(&view).Error; err != nil {
		return nil, err
	}
	if view.ID == 0 {
		return nil, apperror.NewNotFound("Comment does not exist.")
	}
	view.LikedBy = commentLikedBy(db, view.ID)
	return &view, nil
}

func postLikedBy(db *gorm.DB, postID uint) []uint {
	ids := []uint{}
	db.Model(&models.Like{}).Where("post_id = ?", postID).Order("id").Pluck("user_id", &ids)
	return ids
}

func commentLikedBy(db *gorm.DB, commentID uint) []uint {
	ids := []uint{}
	db.Model(&models.CommentLike{}).Where("comment_id = ?", commentID).Order("id").Pluck("user_id", &ids)
	return ids
}

// userProfilePayload serializes a user together with the follower, following
// and bookmark id sets. The password hash never appears here.
func userProfilePayload(db *gorm.DB, user *models.User) gin.H {
	followers := []uint{}
	following := []uint{}
	bookmarks := []uint{}
	db.Model(&models.Follow{}).Where("following_user_id = ?", user.ID).Order("id").Pluck("follower_user_id", &followers)
	db.Model(&models.Follow{}).Where("follower_user_id = ?", user.ID).Order("id").Pluck("following_user_id", &following)
	db.Model(&models.Bookmark{}).Where("user_id = ?", user.ID).Order("id").Pluck("post_id", &bookmarks)

	return gin.H{
		"id":              user.ID,
		"username":        user.Username,
		"fullName":        user.FullName,
		"email":           user.Email,
		"phoneNumber":     user.Phone,
		"bio":             user.Bio,
		"website":         user.Website,
		"avatar":          user.Avatar,
		"followers":       followers,
		"following":       following,
		"bookmarkedPosts": bookmarks,
		"createdAt":       user.CreatedAt,
		"updatedAt":       user.UpdatedAt,
	}
}
