package main

import (
	"context"                               // context package is needed for Redis operations
	"log"                                   // log package is needed for logging
	"os"                                    // For creating the upload directory
	"petcontest_system/internal/api"        // Custom package for API handlers
	"petcontest_system/internal/config"     // Custom package for configuration
	"petcontest_system/internal/middleware" // Custom package for middleware
	"petcontest_system/internal/utils"      // Custom package for utilities

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		logrus.Fatalf("failed to create upload directory: %v", err)
	}

	// Mailer for reset-password dispatch, nil when SendGrid is not configured
	mailer := utils.NewMailer(cfg.SendGridKey, cfg.MailFrom)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Serve uploaded contest images
	r.Static("/static/uploads", cfg.UploadDir)

	// Auth routes
	authGroup := r.Group("/api/auth")
	authGroup.POST("/register", api.RegisterHandler(db))                    // Registration endpoint
	authGroup.POST("/login", api.LoginHandler(db, cfg.JWTSecret))           // Login endpoint
	authGroup.POST("/change-password", api.ChangePasswordHandler(db))       // Password change endpoint
	authGroup.POST("/reset-password", api.ResetPasswordHandler(db, mailer)) // Password reset endpoint

	// Pet and user lookup routes
	r.GET("/api/pets", api.ListPetsHandler(db, redisClient))    // Pet listing endpoint
	r.POST("/api/pets", api.CreatePetHandler(db, redisClient))  // Pet registration endpoint
	r.GET("/api/users", api.ListUsersHandler(db))               // User lookup endpoint

	// Contest routes; a presented session token overrides the client-supplied email
	concursoGroup := r.Group("/api/concurso")
	concursoGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	concursoGroup.POST("/enviar", api.SubmitPhotoHandler(db, redisClient, cfg.UploadDir))     // Photo submission endpoint
	concursoGroup.GET("/fotos", api.ListPhotosHandler(db, redisClient))                       // Photo listing endpoint
	concursoGroup.POST("/votar/:id", api.VotePhotoHandler(db, redisClient))                   // Vote endpoint
	concursoGroup.DELETE("/deletar/:id", api.DeletePhotoHandler(db, redisClient, cfg.UploadDir)) // Owner-gated delete endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
