package controllers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/true-social/api-go/config"
	"github.com/true-social/api-go/models"
	"github.com/true-social/api-go/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.MigrateModels(db))
	return db
}

// testAuth replaces the JWT middleware in tests: the caller identity comes
// from the X-User-ID header.
func testAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("X-User-ID")
		if header == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}
		id, err := strconv.Atoi(header)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		var user models.User
		db.First(&user, id)

		c.Set(string(utils.UserContextKey), &utils.UserClaims{
			UserID:   uint(id),
			Username: user.Username,
		})
		c.Next()
	}
}

// newTestRouter wires every endpoint the way the routes package does, with
// testAuth standing in for the JWT middleware.
func newTestRouter(db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authController := NewAuthController(db)
	userController := NewUserController(db)
	relationshipController := NewRelationshipController(db)
	postController := NewPostController(db, nil)
	commentController := NewCommentController(db)
	interactionController := NewInteractionController(db)
	feedController := NewFeedController(db)

	public := r.Group("/api")
	{
		public.POST("/signup", authController.Signup)
		public.POST("/login", authController.Login)
		public.POST("/users/password", authController.SetPassword)
		public.GET("/users/check-username", authController.CheckUsername)
	}

	protected := r.Group("/api")
	protected.Use(testAuth(db))
	{
		protected.GET("/profile/:profileId", userController.GetProfile)
		protected.PUT("/profile", userController.UpdateProfile)

		users := protected.Group("/users")
		{
			users.GET("/suggested", userController.GetSuggestedUsers)
			users.GET("/:userId/followers", userController.GetUserFollowers)
			users.GET("/:userId/following", userController.GetUserFollowing)
			users.GET("/:userId/posts", postController.GetUserPosts)
			users.POST("/:userId/follow", relationshipController.FollowUser)
			users.POST("/:userId/unfollow", relationshipController.UnfollowUser)
		}

		posts := protected.Group("/posts")
		{
			posts.POST("", postController.CreatePost)
			posts.GET("/:id", postController.GetPost)
			posts.PUT("/:id", postController.UpdatePost)
			posts.DELETE("/:id", postController.DeletePost)
			posts.POST("/:id/like", interactionController.LikePost)
			posts.POST("/:id/unlike", interactionController.UnlikePost)
			posts.GET("/:id/comments", commentController.ListComments)
			posts.POST("/:id/comments", commentController.CreateComment)
		}

		comments := protected.Group("/comments")
		{
			comments.POST("/:id/like", interactionController.LikeComment)
			comments.POST("/:id/unlike", interactionController.UnlikeComment)
		}

		protected.GET("/feed", feedController.GetUserFeed)
		protected.GET("/posts", feedController.ListPosts)

		bookmarks := protected.Group("/bookmarks")
		{
			bookmarks.GET("", feedController.ListBookmarkedPosts)
			bookmarks.POST("/:postId", feedController.BookmarkPost)
			bookmarks.DELETE("/:postId", feedController.UnbookmarkPost)
		}
	}

	return r
}

// doJSON performs a request as userID (0 for anonymous) with an optional JSON
// payload and returns the recorder.
func doJSON(t *testing.T, r *gin.Engine, method, path string, payload interface{}, userID uint) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-User-ID", strconv.Itoa(int(userID)))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func idList(t *testing.T, v interface{}) []uint {
	t.Helper()
	list, ok := v.([]interface{})
	require.True(t, ok, "expected a JSON array, got %T", v)
	out := make([]uint, 0, len(list))
	for _, item := range list {
		out = append(out, uint(item.(float64)))
	}
	return out
}

func seedUser(t *testing.T, db *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{
		Username: username,
		FullName: username + " test",
		Email:    username + "@example.com",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedPost(t *testing.T, db *gorm.DB, userID uint, text string, createdAt time.Time) models.Post {
	t.Helper()
	post := models.Post{
		UserID:    userID,
		Text:      text,
		Category:  "general",
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
	require.NoError(t, db.Create(&post).Error)
	return post
}
