package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	"github.com/oausconnect/backend/services"
)

// RegisterNotificationRoutes sets up notification and device token routes
func RegisterNotificationRoutes(e *echo.Echo, db *mongo.Client, push *services.PushService, store *services.TokenStore) {
	notificationController := controllers.NewNotificationController(db, push, store)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.POST("/notifications/token", notificationController.RegisterToken)
	r.DELETE("/notifications/token", notificationController.UnregisterToken)
	r.GET("/notifications", notificationController.GetNotifications)
	r.PUT("/notifications/:id/read", notificationController.MarkNotificationRead)
	r.PUT("/notifications/read-all", notificationController.MarkAllNotificationsRead)
	r.POST("/notifications/test", notificationController.SendTestNotification)
	r.POST("/notifications/topics/:topic/subscribe", notificationController.SubscribeTopic)
	r.POST("/notifications/topics/:topic/unsubscribe", notificationController.UnsubscribeTopic)
}
