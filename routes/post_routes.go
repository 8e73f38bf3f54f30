package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/true-social/api-go/controllers"
)

func SetupPostRoutes(protected *gin.RouterGroup, postController *controllers.PostController, commentController *controllers.CommentController, interactionController *controllers.InteractionController) {
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

	// User posts routes
	users := protected.Group("/users")
	{
		users.GET("/:userId/posts", postController.GetUserPosts)
	}
}
