package main

import (
	"log"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/oausconnect/backend/config"
	"github.com/oausconnect/backend/controllers"
	"github.com/oausconnect/backend/middleware"
	"github.com/oausconnect/backend/repositories"
	"github.com/oausconnect/backend/routes"
	"github.com/oausconnect/backend/services"
	"github.com/oausconnect/backend/utils"
	"github.com/oausconnect/backend/websocket"
)

// CustomValidator is a custom validator for Echo
type CustomValidator struct {
	validator *validator.Validate
}

// Validate validates the request body
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	// Load .env file
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found")
	}

	// Initialize Firebase
	config.InitFirebase()

	// Connect to Redis
	rdb := config.ConnectRedis()

	// Initialize Cloudinary
	cld := config.InitCloudinary()

	// Connect to database
	client := config.ConnectDB()

	// Create WebSocket hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Create a new Echo instance
	e := echo.New()

	// Initialize custom validator
	customValidator := &CustomValidator{validator: validator.New()}
	e.Validator = customValidator

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter()

	// Middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(middleware.GlobalCORS())
	e.Use(rateLimiter.RateLimit())
	e.Use(middleware.SecurityHeadersWithConfig(middleware.SecurityConfig{
		AllowedDomains: []string{"*"},
		AllowInlineJS:  false,
	}))
	e.Use(middleware.ActivityTracker(client))

	e.Match([]string{"GET", "HEAD"}, "/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":  "OK",
			"message": "OausConnect backend is running",
			"version": "1.0",
		})
	})

	e.Match([]string{"GET", "HEAD"}, "/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status":   "healthy",
			"database": "connected",
		})
	})

	// Initialize repositories
	userRepo := repositories.NewUserRepository(client)

	// Initialize services
	pushService := services.NewPushService(config.FirebaseApp)
	tokenStore := services.NewTokenStore(config.FirebaseApp)
	notifier := services.NewNotificationService(client, pushService, tokenStore, wsHub)

	// Initialize controllers
	authController := controllers.NewAuthController(client)
	userController := controllers.NewUserController(client, userRepo)
	contentController := controllers.NewContentController(client)

	// Register routes
	routes.RegisterAuthRoutes(e, client, authController)
	routes.RegisterUserRoutes(e, client, userController, wsHub)
	routes.RegisterContentRoutes(e, client, contentController, notifier)
	routes.RegisterCommunityRoutes(e, client, notifier)
	routes.RegisterChatRoutes(e, client, wsHub, notifier)
	routes.RegisterUploadRoutes(e, cld)
	routes.RegisterNotificationRoutes(e, client, pushService, tokenStore)
	routes.RegisterAdminRoutes(e, client, userController, pushService, tokenStore)

	// Expired blacklist entries are swept periodically
	go middleware.CleanupBlacklist()

	// View counters batched in Redis are flushed to Mongo on an interval
	if rdb != nil {
		go func() {
			for {
				time.Sleep(30 * time.Second)
				utils.FlushViewCounts(rdb, client)
			}
		}()
	}

	// Ensure uploads directory exists
	if err := utils.InitializeStorage(); err != nil {
		log.Printf("Warning: failed to prepare upload directories: %v", err)
	}
	e.Static("/uploads", "uploads")

	// Start server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
