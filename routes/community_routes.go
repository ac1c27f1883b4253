package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	"github.com/oausconnect/backend/services"
)

// RegisterCommunityRoutes sets up community and membership routes
func RegisterCommunityRoutes(e *echo.Echo, db *mongo.Client, notifier *services.NotificationService) {
	communityController := controllers.NewCommunityController(db, notifier)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.POST("/communities", communityController.CreateCommunity)
	r.GET("/communities", communityController.GetCommunities)
	r.GET("/communities/:id", communityController.GetCommunity)
	r.PUT("/communities/:id", communityController.UpdateCommunity)
	r.DELETE("/communities/:id", communityController.DeleteCommunity)
	r.POST("/communities/:id/join", communityController.JoinCommunity)
	r.POST("/communities/:id/leave", communityController.LeaveCommunity)
	r.GET("/communities/:id/qrcode", communityController.GetCommunityQRCode)
}
