package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	"github.com/oausconnect/backend/services"
)

// RegisterContentRoutes sets up feed, content and comment routes
func RegisterContentRoutes(e *echo.Echo, db *mongo.Client, contentController *controllers.ContentController, notifier *services.NotificationService) {
	commentController := controllers.NewCommentController(db, notifier)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	// Content routes
	r.POST("/content", contentController.CreateContent)
	r.GET("/content", contentController.GetFeed)
	r.GET("/content/:id", contentController.GetContent)
	r.PUT("/content/:id", contentController.UpdateContent)
	r.DELETE("/content/:id", contentController.DeleteContent)
	r.POST("/content/:id/upvote", contentController.VoteContent)

	// Comment routes
	r.POST("/content/:contentId/comments", commentController.CreateComment)
	r.GET("/content/:contentId/comments", commentController.GetComments)
	r.PUT("/comments/:id", commentController.UpdateComment)
	r.DELETE("/comments/:id", commentController.DeleteComment)
	r.POST("/comments/:id/upvote", commentController.VoteComment)
}
