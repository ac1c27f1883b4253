package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	"github.com/oausconnect/backend/services"
	ws "github.com/oausconnect/backend/websocket"
)

// RegisterChatRoutes sets up chat and message routes
func RegisterChatRoutes(e *echo.Echo, db *mongo.Client, hub *ws.Hub, notifier *services.NotificationService) {
	chatController := controllers.NewChatController(db, hub, notifier)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	// Chat lifecycle
	r.POST("/chats/direct", chatController.CreateDirectChat)
	r.POST("/chats/group", chatController.CreateGroupChat)
	r.GET("/chats", chatController.GetChats)
	r.GET("/chats/:id", chatController.GetChat)

	// Group membership
	r.POST("/chats/:id/members", chatController.AddMembers)
	r.DELETE("/chats/:id/members/:userId", chatController.RemoveMember)
	r.PUT("/chats/:id/admins/:userId", chatController.PromoteAdmin)

	// Messages
	r.POST("/chats/:id/messages", chatController.SendMessage)
	r.GET("/chats/:id/messages", chatController.GetMessages)
	r.POST("/chats/:id/read", chatController.MarkRead)
	r.DELETE("/chats/messages/:messageId", chatController.DeleteMessage)
}
