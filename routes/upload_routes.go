package routes

import (
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/labstack/echo/v4"

	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
)

// RegisterUploadRoutes sets up media upload routes
func RegisterUploadRoutes(e *echo.Echo, cld *cloudinary.Cloudinary) {
	uploadController := controllers.NewUploadController(cld)

	r := e.Group("/api")
	r.Use(middleware.JWTMiddleware())

	r.POST("/upload/image", uploadController.UploadImage)
	r.POST("/upload/video", uploadController.UploadVideo)
	r.POST("/upload/file", uploadController.UploadFile)
}
