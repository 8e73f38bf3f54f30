package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/controllers"
)

func SetupUserRoutes(protected *gin.RouterGroup, userController *controllers.UserController, relationshipController *controllers.RelationshipController) {
	users := protected.Group("/users")
	{
		users.GET("/suggested", userController.GetSuggestedUsers)
		users.GET("/:userId/followers", userController.GetUserFollowers)
		users.GET("/:userId/following", userController.GetUserFollowing)
		users.POST("/:userId/follow", relationshipController.FollowUser)
		users.POST("/:userId/unfollow", relationshipController.UnfollowUser)
	}
}
