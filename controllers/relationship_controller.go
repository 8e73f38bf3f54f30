package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/gorm"
)

type RelationshipController struct {
	DB *gorm.DB
}

func NewRelationshipController(db *gorm.DB) *RelationshipController {
	return &RelationshipController{DB: db}
}

// FollowUser adds the target to the caller's following set and the caller to
// the target's followers set. Following someone already followed is a no-op
// success. Both sides of the relation come from the same follows row, and the
// insert runs in a transaction, so an observer never sees a half-applied pair.
func (rc *RelationshipController) FollowUser(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var target models.User
	if err := rc.DB.First(&target, c.Param("userId")).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}

	if actor.UserID == target.ID {
		respondError(c, apperror.NewValidation(map[string]string{
			"followId": "You can't follow yourself.",
		}))
		return
	}

	var existing models.Follow
	err := rc.DB.Where("follower_user_id = ? AND following_user_id = ?", actor.UserID, target.ID).
		First(&existing).Error
	if err == nil {
		// Already following; set semantics make this a no-op success.
		rc.respondWithActor(c, actor.UserID, "Started following")
		return
	}
	if err != gorm.ErrRecordNotFound {
		respondError(c, apperror.NewTransient("could not read follow state", err))
		return
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		respondError(c, apperror.NewTransient("could not start transaction", tx.Error))
		return
	}

	follow := models.Follow{
		FollowerUserID:  actor.UserID,
		FollowingUserID: target.ID,
	}
	if err := tx.Create(&follow).Error; err != nil {
		tx.Rollback()
		respondError(c, apperror.NewTransient("could not follow user", err))
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondError(c, apperror.NewTransient("could not commit follow", err))
		return
	}

	rc.respondWithActor(c, actor.UserID, "Started following")
}

// UnfollowUser is the symmetric removal, with the same guarantees.
func (rc *RelationshipController) UnfollowUser(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var target models.User
	if err := rc.DB.First(&target, c.Param("userId")).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}

	tx := rc.DB.Begin()
	if tx.Error != nil {
		respondError(c, apperror.NewTransient("could not start transaction", tx.Error))
		return
	}

	// Deleting zero rows is fine: unfollowing someone not followed is a no-op.
	if err := tx.Where("follower_user_id = ? AND following_user_id = ?", actor.UserID, target.ID).
		Delete(&models.Follow{}).Error; err != nil {
		tx.Rollback()
		respondError(c, apperror.NewTransient("could not unfollow user", err))
		return
	}

	if err := tx.Commit().Error; err != nil {
		respondError(c, apperror.NewTransient("could not commit unfollow", err))
		return
	}

	rc.respondWithActor(c, actor.UserID, "Unfollowed")
}

func (rc *RelationshipController) respondWithActor(c *gin.Context, actorID uint, message string) {
	var user models.User
	if err := rc.DB.First(&user, actorID).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": message,
		"user":    userProfilePayload(rc.DB, &user),
	})
}
