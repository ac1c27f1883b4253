package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	ws "github.com/oausconnect/backend/websocket"
)

// RegisterUserRoutes sets up user-related protected routes
func RegisterUserRoutes(e *echo.Echo, db *mongo.Client, userController *controllers.UserController, hub *ws.Hub) {
	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.GET("/users", userController.GetAllUsers)
	r.GET("/users/search", userController.SearchUsers)
	r.GET("/users/profile", userController.GetProfile)
	r.PUT("/users/profile", userController.UpdateProfile)
	r.POST("/users/change-password", userController.ChangePassword)
	r.DELETE("/users", userController.DeleteUser)
	r.GET("/users/:id", userController.GetUser)

	// WebSocket endpoint. Connections without a token are accepted and must
	// authenticate in-band before the hub delivers events to them.
	e.GET("/api/ws", func(c echo.Context) error {
		userID := primitive.NilObjectID
		if hex := middleware.GetUserIDFromToken(c); hex != "" {
			if id, err := primitive.ObjectIDFromHex(hex); err == nil {
				userID = id
			}
		}
		return ws.HandleWebSocket(c, hub, userID)
	}, middleware.OptionalAuth())
}
