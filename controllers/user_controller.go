package controllers

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/gorm"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

func (uc *UserController) GetProfile(c *gin.Context) {
	var user models.User
	if err := uc.DB.First(&user, c.Param("profileId")).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile fetched successfully.",
		"profile": userProfilePayload(uc.DB, &user),
	})
}

type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phoneNumber"`
	Bio      string `json:"bio"`
	Website  string `json:"website"`
	Avatar   string `json:"avatar"`
}

// UpdateProfile applies the provided fields to the caller's own account.
// Empty fields are left untouched.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	var input UpdateProfileRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := utils.ValidateUserFields(input.Email, input.Phone, input.Bio, input.Website)
	if len(fields) > 0 {
		respondError(c, apperror.NewValidation(fields))
		return
	}

	var user models.User
	if err := uc.DB.First(&user, actor.UserID).Error; err != nil {
		respondError(c, apperror.NewNotFound("User not found!"))
		return
	}

	updates := map[string]interface{}{}
	if input.FullName != "" {
		updates["full_name"] = input.FullName
	}
	if input.Email != "" {
		updates["email"] = input.Email
	}
	if input.Phone != "" {
		updates["phone"] = input.Phone
	}
	if input.Bio != "" {
		updates["bio"] = input.Bio
	}
	if input.Website != "" {
		updates["website"] = input.Website
	}
	if input.Avatar != "" {
		updates["avatar"] = input.Avatar
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := uc.DB.Model(&user).Updates(updates).Error; err != nil {
			respondError(c, apperror.NewUnknown("could not update profile", err))
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully.",
		"user":    userProfilePayload(uc.DB, &user),
	})
}

// SuggestedUser is a follow-suggestion row ranked by follower count.
type SuggestedUser struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	FullName       string `json:"fullName"`
	Avatar         string `json:"avatar,omitempty"`
	FollowersCount int64  `json:"followersCount"`
}

// GetSuggestedUsers returns up to limit users the caller does not follow yet,
// most-followed first. The caller themselves is never suggested.
func (uc *UserController) GetSuggestedUsers(c *gin.Context) {
	actor := utils.GetUser(c)
	if actor == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found in context"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	if limit < 1 {
		limit = 5
	}
	if limit > 20 {
		limit = 20
	}

	suggestions := []SuggestedUser{}
	err := uc.DB.Table("users").
		Select(`
			users.id,
			users.username,
			users.full_name,
			users.avatar,
			(SELECT COUNT(*) FROM follows WHERE follows.following_user_id = users.id) as followers_count`).
		Where("users.id <> ?", actor.UserID).
		Where("users.id NOT IN (SELECT following_user_id FROM follows WHERE follower_user_id = ?)", actor.UserID).
		Order("followers_count DESC, users.id ASC").
		Limit(limit).
		Scan(&suggestions).Error
	if err != nil {
		respondError(c, err)
		return
	}

	if len(suggestions) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "No users to follow.", "users": suggestions})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Follow suggestions fetched successfully.",
		"users":   suggestions,
	})
}

type followListEntry struct {
	UserID    uint      `json:"userId"`
	Username  string    `json:"username"`
	FullName  string    `json:"fullName"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"followedAt"`
}

func (uc *UserController) GetUserFollowers(c *gin.Context) {
	uc.listFollowEdges(c, "following_user_id", "follower_user_id", "followers")
}

func (uc *UserController) GetUserFollowing(c *gin.Context) {
	uc.listFollowEdges(c, "follower_user_id", "following_user_id", "following")
}

func (uc *UserController) listFollowEdges(c *gin.Context, whereColumn, joinColumn, key string) {
	userID := c.Param("userId")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 50 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	var total int64
	uc.DB.Model(&models.Follow{}).Where(whereColumn+" = ?", userID).Count(&total)

	entries := []followListEntry{}
	result := uc.DB.Model(&models.Follow{}).
		Select("users.id as user_id, users.username, users.full_name, users.avatar, follows.created_at").
		Joins("JOIN users ON users.id = follows."+joinColumn).
		Where("follows."+whereColumn+" = ?", userID).
		Order("follows.created_at DESC, follows.id DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&entries)

	if result.Error != nil {
		respondError(c, result.Error)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key: entries,
		"pagination": PaginationMeta{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  total,
			TotalPages:  int(math.Ceil(float64(total) / float64(pageSize))),
		},
	})
}
