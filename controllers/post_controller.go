package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/gorm"
)

type PostController struct {
	DB      *gorm.DB
	Storage MediaStorage
}

func NewPostController(db *gorm.DB, storage MediaStorage) *PostController {
	return &PostController{DB: db, Storage: storage}
}

type CreatePostRequest struct {
	Text     string `json:"postText" form:"postText"`
	Category string `json:"postCategory" form:"postCategory"`
}

type UpdatePostRequest struct {
	Text string `json:"postText"`
}

// CreatePost validates text and category before anything is persisted. An
// optional multipart "postMedia" file is uploaded to object storage first and
// the resulting public URL stored on the post.
func (pc *PostController) CreatePost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := utils.ValidatePostInput(req.Text, req.Category)
	if len(fields) > 0 {
		respondError(c, apperror.NewValidation(fields))
		return
	}

	imageURL := ""
	if file, err := c.FormFile("postMedia"); err == nil {
		if pc.Storage == nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Error uploading file. Please try again"})
			return
		}
		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Error uploading file. Please try again"})
			return
		}
		defer src.Close()

		key := generateMediaKey(file.Filename)
		imageURL, err = pc.Storage.Upload(c.Request.Context(), key, file.Header.Get("Content-Type"), src)
		if err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "Error uploading file. Please try again"})
			return
		}
	}

	post := models.Post{
		UserID:   actor.UserID,
		Text:     strings.TrimSpace(req.Text),
		Category: req.Category,
		ImageURL: imageURL,
	}

	if err := pc.DB.Create(&post).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not create post", err))
		return
	}

	view, err := fetchPostView(pc.DB, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    view,
	})
}

func (pc *PostController) GetPost(c *gin.Context) {
	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	view, err := fetchPostView(pc.DB, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post fetched successfully.",
		"post":    view,
	})
}

// UpdatePost replaces the post text. Only the owner may update; anyone else
// gets a not-permitted response and the stored text stays untouched.
func (pc *PostController) UpdatePost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	if post.UserID != actor.UserID {
		respondError(c, apperror.NewNotPermitted("You're not allowed to perform this operation."))
		return
	}

	fields := utils.ValidatePostText(req.Text)
	if len(fields) > 0 {
		respondError(c, apperror.NewValidation(fields))
		return
	}

	updates := map[string]interface{}{
		"text":       strings.TrimSpace(req.Text),
		"updated_at": time.Now(),
	}
	if err := pc.DB.Model(&post).Updates(updates).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not update post", err))
		return
	}

	view, err := fetchPostView(pc.DB, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post updated successfully",
		"post":    view,
	})
}

// DeletePost removes the post, its likes, and every user's bookmark of it in
// one transaction; a failure of any step rolls back all of them. Comments on
// the post are deliberately left in place.
func (pc *PostController) DeletePost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := pc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	if post.UserID != actor.UserID {
		respondError(c, apperror.NewNotPermitted("You're not allowed to perform this operation."))
		return
	}

	tx := pc.DB.Begin()
	if tx.Error != nil {
		respondError(c, apperror.NewTransient("could not start transaction", tx.Error))
		return
	}

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Like{}).Error; err != nil {
		tx.Rollback()
		respondError(c, apperror.NewTransient("could not delete post likes", err))
		return
	}

	if err := tx.Where("post_id = ?", post.ID).Delete(&models.Bookmark{}).Error; err != nil {
		tx.Rollback()
		respondError(c, apperror.NewTransient("could not clean up bookmarks", err))
		return
	}

	if err := tx.Delete(&post).Error; err != nil {
		tx.Rollback()
		respondError(c, apperror.NewTransient("could not delete post", err))
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondError(c, apperror.NewTransient("could not commit delete", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post deleted successfully.",
		"post":    gin.H{"id": post.ID},
	})
}

// GetUserPosts lists a user's own posts, newest first.
func (pc *PostController) GetUserPosts(c *gin.Context) {
	userID := c.Param("userId")

	var user models.User
	if err := pc.DB.First(&user, userID).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}

	posts := []PostView{}
	err := postViewQuery(pc.DB).
		Where("posts.user_id = ?", userID).
		Order("posts.created_at DESC, posts.id DESC").
		Scan(&posts).Error
	if err != nil {
		respondError(c, err)
		return
	}

	if len(posts) == 0 {
		respondError(c, apperror.NewNotFound("Nothing posted yet."))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Posts fetched successfully.",
		"posts":   posts,
	})
}
