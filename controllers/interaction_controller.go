package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/gorm"
)

type InteractionController struct {
	DB *gorm.DB
}

func NewInteractionController(db *gorm.DB) *InteractionController {
	return &InteractionController{DB: db}
}

// LikePost adds the caller to the post's likedBy set. Liking an already-liked
// post is a no-op success; the set never holds duplicates.
func (ic *InteractionController) LikePost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := ic.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	var existing models.Like
	err := ic.DB.Where("post_id = ? AND user_id = ?", post.ID, actor.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		like := models.Like{PostID: post.ID, UserID: actor.UserID}
		if err := ic.DB.Create(&like).Error; err != nil {
			respondError(c, apperror.NewUnknown("could not like post", err))
			return
		}
	} else if err != nil {
		respondError(c, err)
		return
	}

	view, err := fetchPostView(ic.DB, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post liked", "post": view})
}

func (ic *InteractionController) UnlikePost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := ic.DB.First(&post, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	if err := ic.DB.Where("post_id = ? AND user_id = ?", post.ID, actor.UserID).
		Delete(&models.Like{}).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not unlike post", err))
		return
	}

	view, err := fetchPostView(ic.DB, post.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post unliked", "post": view})
}

func (ic *InteractionController) LikeComment(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var comment models.Comment
	if err := ic.DB.First(&comment, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Comment does not exist."))
		return
	}

	var existing models.CommentLike
	err := ic.DB.Where("comment_id = ? AND user_id = ?", comment.ID, actor.UserID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		like := models.CommentLike{CommentID: comment.ID, UserID: actor.UserID}
		if err := ic.DB.Create(&like).Error; err != nil {
			respondError(c, apperror.NewUnknown("could not like comment", err))
			return
		}
	} else if err != nil {
		respondError(c, err)
		return
	}

	view, err := fetchCommentView(ic.DB, comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Liked comment", "comment": view})
}

func (ic *InteractionController) UnlikeComment(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var comment models.Comment
	if err := ic.DB.First(&comment, c.Param("id")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Comment does not exist."))
		return
	}

	if err := ic.DB.Where("comment_id = ? AND user_id = ?", comment.ID, actor.UserID).
		Delete(&models.CommentLike{}).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not unlike comment", err))
		return
	}

	view, err := fetchCommentView(ic.DB, comment.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Unliked comment", "comment": view})
}
