package main

import (
	"log"

	"github.com/genmatch/genmatch-api/internal/config"
	"github.com/genmatch/genmatch-api/internal/database"
	"github.com/genmatch/genmatch-api/internal/handlers"
	"github.com/genmatch/genmatch-api/internal/middleware"
	"github.com/genmatch/genmatch-api/internal/repository"
	"github.com/genmatch/genmatch-api/internal/services"
	"github.com/genmatch/genmatch-api/internal/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Configure token signing
	utils.SetJWTSecret(cfg.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	db := database.GetDB()

	// Run migrations
	if err := database.MigrateDatabase(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	ratingRepo := repository.NewRatingRepository(db)
	photoRepo := repository.NewPhotoRepository(db)
	chatRepo := repository.NewChatRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo)
	taskService := services.NewTaskService(taskRepo, notifRepo)
	ratingService := services.NewRatingService(ratingRepo, taskRepo, notifRepo)
	photoService := services.NewPhotoService(photoRepo, taskRepo)
	chatService := services.NewChatService(chatRepo, taskRepo, notifRepo)
	notifService := services.NewNotificationService(notifRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	ratingHandler := handlers.NewRatingHandler(ratingService)
	photoHandler := handlers.NewPhotoHandler(photoService)
	chatHandler := handlers.NewChatHandler(chatService)
	notifHandler := handlers.NewNotificationHandler(notifService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "GenMatch API is running",
		})
	})

	// Auth routes (public)
	r.POST("/register", authHandler.Register)
	r.POST("/login", authHandler.Login)
	r.GET("/auth/check", middleware.RequireAuth(), authHandler.Check)

	// Task routes
	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/my-tasks", middleware.OptionalAuth(), taskHandler.ListMyTasks)
		tasks.GET("/:id/status", taskHandler.GetTaskStatus)
		tasks.POST("", middleware.RequireAuth(), taskHandler.CreateTask)
		tasks.POST("/:id/accept", middleware.RequireAuth(), taskHandler.AcceptTask)
		tasks.POST("/:id/complete", middleware.RequireAuth(), taskHandler.CompleteTask)
		tasks.PUT("/:id/status", middleware.RequireAuth(), taskHandler.UpdateTaskStatus)
		tasks.DELETE("/:id", middleware.RequireAuth(), taskHandler.DeleteTask)
	}

	// Rating routes
	r.POST("/ratings", middleware.RequireAuth(), ratingHandler.CreateRating)
	r.GET("/ratings", ratingHandler.ListRatings)

	// Photo routes
	photos := r.Group("/photos")
	{
		photos.POST("", middleware.RequireAuth(), photoHandler.UploadPhoto)
		photos.GET("", photoHandler.ListPhotos)
		photos.GET("/:id", photoHandler.GetPhoto)
		photos.PUT("/:id/status", middleware.RequireAuth(), photoHandler.UpdatePhotoStatus)
	}

	// Chat routes
	r.GET("/chat", middleware.RequireAuth(), chatHandler.ListMessages)
	r.POST("/chat", middleware.RequireAuth(), chatHandler.SendMessage)

	// Notification routes
	r.POST("/notifications", middleware.RequireAuth(), notifHandler.CreateNotification)
	r.GET("/notifications", middleware.RequireAuth(), notifHandler.ListNotifications)
	r.PUT("/notifications", middleware.RequireAuth(), notifHandler.MarkRead)

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
