package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/gorm"
)

type CommentController struct {
	DB *gorm.DB
}

func NewCommentController(db *gorm.DB) *CommentController {
	return &CommentController{DB: db}
}

type CreateCommentRequest struct {
	Text string `json:"text"`
}

func (cc *CommentController) CreateComment(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var req CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var post models.Post
	if err := cc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	fields := utils.ValidateCommentText(req.Text)
	if len(fields) > 0 {
		respondError(c, apperror.NewValidation(fields))
		return
	}

	comment := models.Comment{
		PostID: post.ID,
		UserID: actor.UserID,
		Text:   strings.TrimSpace(req.Text),
	}
	if err := cc.DB.Create(&comment).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not create comment", err))
		return
	}

	view, err := fetchCommentView(cc.DB, comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Comment posted successfully.",
		"comment": view,
	})
}

// ListComments returns all comments on a post, newest first, with each
// commenter's display fields expanded.
func (cc *CommentController) ListComments(c *gin.Context) {
	var post models.Post
	if err := cc.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	views := []CommentView{}
	err := commentViewQuery(cc.DB).
		Where("comments.post_id = ?", post.ID).
		Order("comments.created_at DESC, comments.id DESC").
		Scan(&views).Error
	if err != nil {
		respondError(c, err)
		return
	}

	for i := range views {
		views[i].LikedBy = commentLikedBy(cc.DB, views[i].ID)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Comments fetched successfully",
		"comments": views,
	})
}
