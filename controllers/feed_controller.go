package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/gorm"
)

type FeedController struct {
	DB *gorm.DB
}

type ListPostsQuery struct {
	Page     int `form:"page,default=1" binding:"min=1"`
	PageSize int `form:"limit,default=10" binding:"min=1,max=50"`
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

// GetUserFeed returns posts authored by anyone in the caller's followers or
// following sets, newest first. Including both directions of the relation is
// deliberate; it matches the product's current behavior.
func (fc *FeedController) GetUserFeed(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	followerIDs := []uint{}
	followingIDs := []uint{}
	fc.DB.Model(&models.Follow{}).Where("following_user_id = ?", actor.UserID).Pluck("follower_user_id", &followerIDs)
	fc.DB.Model(&models.Follow{}).Where("follower_user_id = ?", actor.UserID).Pluck("following_user_id", &followingIDs)

	seen := map[uint]bool{}
	authorIDs := []uint{}
	for _, id := range append(followerIDs, followingIDs...) {
		if !seen[id] {
			seen[id] = true
			authorIDs = append(authorIDs, id)
		}
	}

	if len(authorIDs) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing in your feed.", "posts": []PostView{}})
		return
	}

	posts := []PostView{}
	err := postViewQuery(fc.DB).
		Where("posts.user_id IN ?", authorIDs).
		Order("posts.created_at DESC, posts.id DESC").
		Scan(&posts).Error
	if err != nil {
		respondError(c, err)
		return
	}

	if len(posts) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing in your feed.", "posts": posts})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User feed fetched successfully.",
		"posts":   posts,
	})
}

// ListPosts pages through all posts, newest first, reporting the total post
// and page counts alongside.
func (fc *FeedController) ListPosts(c *gin.Context) {
	var query ListPostsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var totalPosts int64
	if err := fc.DB.Model(&models.Post{}).Count(&totalPosts).Error; err != nil {
		respondError(c, err)
		return
	}

	if totalPosts == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No posts found.", "posts": []PostView{}})
		return
	}

	offset := (query.Page - 1) * query.PageSize
	posts := []PostView{}
	err := postViewQuery(fc.DB).
		Order("posts.created_at DESC, posts.id DESC").
		Offset(offset).
		Limit(query.PageSize).
		Scan(&posts).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       posts,
		"currentPage": query.Page,
		"totalPages":  int(math.Ceil(float64(totalPosts) / float64(query.PageSize))),
		"totalPosts":  totalPosts,
	})
}

// BookmarkPost adds the post to the caller's bookmarkedPosts set; bookmarking
// twice is a no-op success.
func (fc *FeedController) BookmarkPost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := fc.DB.First(&post, c.Param("postId")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	var existing models.Bookmark
	err := fc.DB.Where("user_id = ? AND post_id = ?", actor.UserID, post.ID).First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		bookmark := models.Bookmark{UserID: actor.UserID, PostID: post.ID}
		if err := fc.DB.Create(&bookmark).Error; err != nil {
			respondError(c, apperror.NewUnknown("could not bookmark post", err))
			return
		}
	} else if err != nil {
		respondError(c, err)
		return
	}

	fc.respondWithActor(c, actor.UserID, "Added to bookmarked posts.")
}

func (fc *FeedController) UnbookmarkPost(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var post models.Post
	if err := fc.DB.First(&post, c.Param("postId")).Error; err != nil {
		respondError(c, apperror.NewNotFound("Post does not exist."))
		return
	}

	if err := fc.DB.Where("user_id = ? AND post_id = ?", actor.UserID, post.ID).
		Delete(&models.Bookmark{}).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not remove bookmark", err))
		return
	}

	fc.respondWithActor(c, actor.UserID, "Deleted from bookmarked posts.")
}

// ListBookmarkedPosts returns the caller's bookmarked posts with author info
// attached, most recently bookmarked first.
func (fc *FeedController) ListBookmarkedPosts(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	posts := []PostView{}
	err := postViewQuery(fc.DB).
		Joins("JOIN bookmarks ON bookmarks.post_id = posts.id").
		Where("bookmarks.user_id = ?", actor.UserID).
		Order("bookmarks.created_at DESC, bookmarks.id DESC").
		Scan(&posts).Error
	if err != nil {
		respondError(c, err)
		return
	}

	if len(posts) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No posts bookmarked", "posts": posts})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Bookmarked posts fetched successfully.",
		"posts":   posts,
	})
}

func (fc *FeedController) respondWithActor(c *gin.Context, actorID uint, message string) {
	var user models.User
	if err := fc.DB.First(&user, actorID).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    userProfilePayload(fc.DB, &user),
	})
}
