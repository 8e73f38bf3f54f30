package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/controllers"
	"github.com/true-social/api-go/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(r *gin.Engine, db *gorm.DB, storage controllers.MediaStorage) {
	// Initialize controllers
	authController := controllers.NewAuthController(db)
	userController := controllers.NewUserController(db)
	relationshipController := controllers.NewRelationshipController(db)
	postController := controllers.NewPostController(db, storage)
	commentController := controllers.NewCommentController(db)
	interactionController := controllers.NewInteractionController(db)
	feedController := controllers.NewFeedController(db)

	// Public routes
	public := r.Group("/api")
	{
		public.POST("/signup", authController.Signup)
		public.POST("/login", authController.Login)
		public.POST("/users/password", authController.SetPassword)
		public.GET("/users/check-username", authController.CheckUsername)
	}

	// Protected routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/refresh-token", authController.RefreshToken)
		protected.POST("/logout", authController.Logout)

		protected.GET("/profile/:profileId", userController.GetProfile)
		protected.PUT("/profile", userController.UpdateProfile)

		// Setup other routes within the protected group
		SetupUserRoutes(protected, userController, relationshipController)
		SetupPostRoutes(protected, postController, commentController, interactionController)
		SetupFeedRoutes(protected, feedController)
	}
}
