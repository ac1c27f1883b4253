package routes

import (
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oausconnect/backend/controllers"
)

// RegisterAuthRoutes sets up public authentication routes
func RegisterAuthRoutes(e *echo.Echo, db *mongo.Client, authController *controllers.AuthController) {
	passwordController := controllers.NewPasswordController(db)

	e.POST("/api/auth/register", authController.Register)
	e.POST("/api/auth/login", authController.Login)
	e.POST("/api/auth/logout", authController.Logout)
	e.POST("/api/auth/refresh", authController.RefreshToken)
	e.POST("/api/auth/remember-me", authController.RememberMeLogin)
	e.POST("/api/auth/forgot-password", passwordController.ForgotPassword)
	e.POST("/api/auth/reset-password/:token", passwordController.ResetPassword)
}
