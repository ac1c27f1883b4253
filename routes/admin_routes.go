package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	"github.com/oausconnect/backend/services"
)

// RegisterAdminRoutes sets up admin-only moderation routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Client, userController *controllers.UserController, push *services.PushService, store *services.TokenStore) {
	notificationController := controllers.NewNotificationController(db, push, store)

	r := e.Group("/api/admin")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RequireRole("admin"))

	r.DELETE("/users/:id", userController.AdminDeactivateUser)
	r.POST("/notifications/topics/:topic", notificationController.BroadcastTopic)
}
