package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/controllers"
)

func SetupFeedRoutes(protected *gin.RouterGroup, feedController *controllers.FeedController) {
	protected.GET("/feed", feedController.GetUserFeed)
	protected.GET("/posts", feedController.ListPosts)

	bookmarks := protected.Group("/bookmarks")
	{
		bookmarks.GET("", feedController.ListBookmarkedPosts)
		bookmarks.POST("/:postId", feedController.BookmarkPost)
		bookmarks.DELETE("/:postId", feedController.UnbookmarkPost)
	}
}
