package controllers

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/apperror"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{DB: db}
}

type SignupRequest struct {
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phoneNumber"`
	Bio      string `json:"bio"`
	Website  string `json:"website"`
	Avatar   string `json:"avatar"`
}

// Signup creates an account. The password is optional at this point; accounts
// created without one must call SetPassword before they can log in.
func (ac *AuthController) Signup(c *gin.Context) {
	var input SignupRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := utils.ValidateUserFields(input.Email, input.Phone, input.Bio, input.Website)
	if strings.TrimSpace(input.Username) == "" {
		fields["username"] = "Username is required."
	}
	if input.Email == "" {
		fields["email"] = "Email is required."
	}
	if len(fields) > 0 {
		respondError(c, apperror.NewValidation(fields))
		return
	}

	var existing models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&existing).Error; err == nil {
		respondError(c, apperror.NewValidation(map[string]string{
			"username": "Username is already taken.",
		}))
		return
	}

	user := models.User{
		Username: strings.TrimSpace(input.Username),
		FullName: input.FullName,
		Email:    input.Email,
		Phone:    input.Phone,
		Bio:      input.Bio,
		Website:  input.Website,
		Avatar:   input.Avatar,
	}

	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(c, apperror.NewUnknown("could not hash password", err))
			return
		}
		user.Password = string(hashed)
	}

	if err := ac.DB.Create(&user).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not create user", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully.",
		"user":    userProfilePayload(ac.DB, &user),
	})
}

func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		respondError(c, apperror.NewNotFound("User doesn't exist"))
		return
	}

	if user.Password == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Please set a password for your account!!"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	accessToken, refreshToken, err := ac.issueTokens(&user)
	if err != nil {
		respondError(c, apperror.NewUnknown("could not generate token", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "User logged in successfully",
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": refreshToken,
		"user":          userProfilePayload(ac.DB, &user),
	})
}

// SetPassword sets or replaces the account password. This is the only place a
// plaintext password is hashed, exactly once per write.
func (ac *AuthController) SetPassword(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := map[string]string{}
	if input.Username == "" {
		fields["username"] = "Username is required."
	}
	if len(input.Password) < 6 {
		fields["password"] = "Password must be at least 6 characters long."
	}
	if len(fields) > 0 {
		respondError(c, apperror.NewValidation(fields))
		return
	}

	var user models.User
	if err := ac.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		respondError(c, apperror.NewNotFound("User doesn't exist"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, apperror.NewUnknown("could not hash password", err))
		return
	}

	if err := ac.DB.Model(&user).Update("password", string(hashed)).Error; err != nil {
		respondError(c, apperror.NewUnknown("could not set password", err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Password set successfully.",
		"user":    userProfilePayload(ac.DB, &user),
	})
}

// CheckUsername reports whether a username is still free for sign-up.
func (ac *AuthController) CheckUsername(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username query parameter is required"})
		return
	}

	var count int64
	if err := ac.DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		respondError(c, err)
		return
	}

	if count == 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":         username + " is available",
			"availableStatus": true,
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":         username + " is already taken.",
		"availableStatus": false,
	})
}

func (ac *AuthController) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var refreshToken models.RefreshToken
	if err := ac.DB.Where("token = ?", input.RefreshToken).First(&refreshToken).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
		return
	}

	if time.Now().After(refreshToken.ExpirationDate) {
		ac.DB.Delete(&refreshToken)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Refresh token expired"})
		return
	}

	var user models.User
	if err := ac.DB.First(&user, refreshToken.UserID).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
		return
	}

	accessToken, newRefreshToken, err := ac.signTokenPair(&user)
	if err != nil {
		respondError(c, apperror.NewUnknown("could not generate token", err))
		return
	}

	refreshToken.Token = newRefreshToken
	refreshToken.ExpirationDate = time.Now().Add(time.Hour * 24 * 30)
	ac.DB.Save(&refreshToken)

	c.JSON(http.StatusOK, gin.H{
		"token_type":    "Bearer",
		"access_token":  accessToken,
		"refresh_token": newRefreshToken,
		"user":          userProfilePayload(ac.DB, &user),
	})
}

func (ac *AuthController) Logout(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refresh_token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ac.DB.Where("token = ?", input.RefreshToken).Delete(&models.RefreshToken{})

	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

func (ac *AuthController) issueTokens(user *models.User) (string, string, error) {
	accessToken, refreshToken, err := ac.signTokenPair(user)
	if err != nil {
		return "", "", err
	}

	if err := ac.DB.Create(&models.RefreshToken{
		UserID:         user.ID,
		Token:          refreshToken,
		ExpirationDate: time.Now().Add(time.Hour * 24 * 30),
	}).Error; err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}

func (ac *AuthController) signTokenPair(user *models.User) (string, string, error) {
	secret := []byte(os.Getenv("JWT_SECRET"))

	accessTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(time.Hour * 24 * 7).Unix(),
	})
	accessToken, err := accessTokenBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	refreshTokenBase := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"exp":     time.Now().Add(time.Hour * 24 * 30).Unix(),
	})
	refreshToken, err := refreshTokenBase.SignedString(secret)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
