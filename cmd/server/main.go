package main

import (
	"context" // context package is needed for the Redis ping
	"log"     // log package is needed for logging

	"finance_tracker/internal/api"        // Custom package for API handlers
	"finance_tracker/internal/config"     // Custom package for configuration
	"finance_tracker/internal/insight"    // Custom package for the completion API client
	"finance_tracker/internal/middleware" // Custom package for middleware
	"finance_tracker/internal/store"      // Custom package for persistence

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

	// Connect to the database; TranslateError maps driver duplicate-key
	// errors onto gorm.ErrDuplicatedKey for the store
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client; caching is optional and the server runs without it
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
	} else {
		logrus.Warn("REDIS_ADDR not set, running without cache")
	}

	st := store.New(db) // Persistence layer handle, passed down to handlers

	// Client for the external completion API
	insightClient := insight.NewClient(cfg.GroqAPIURL, cfg.GroqAPIKey, cfg.GroqModel)

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

	// Tag every request with an ID for log correlation
	r.Use(middleware.RequestIDMiddleware())

	// Auth routes (no token)
	r.POST("/api/auth/register", api.RegisterHandler(st, cfg.JWTSecret)) // Registration endpoint
	r.POST("/api/auth/login", api.LoginHandler(st, cfg.JWTSecret))       // Login endpoint

	// All remaining routes require a valid bearer token
	authGroup := r.Group("/api")
	authGroup.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/transactions", api.ListTransactionsHandler(st, redisClient))          // List transactions endpoint
	authGroup.POST("/transactions", api.CreateTransactionHandler(st, redisClient))        // Create transaction endpoint
	authGroup.PUT("/transactions/:id", api.UpdateTransactionHandler(st, redisClient))     // Update transaction endpoint
	authGroup.DELETE("/transactions/:id", api.DeleteTransactionHandler(st, redisClient))  // Delete transaction endpoint
	authGroup.GET("/categories", api.CategoriesHandler(st, redisClient))                  // List categories endpoint
	authGroup.GET("/summary/monthly", api.MonthlySummaryHandler(st, redisClient))         // Monthly summary endpoint
	authGroup.GET("/summary/category", api.CategorySummaryHandler(st, redisClient))       // Category summary endpoint
	authGroup.POST("/ai/insights", api.InsightsHandler(st, insightClient))                // AI insights endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
