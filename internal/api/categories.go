package api

import (
	"net/http" // HTTP status codes

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Authenticated user lookup
	"finance_tracker/internal/store"      // Persistence layer
	"finance_tracker/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CategoriesHandler returns the user's categories ordered by name
func CategoriesHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := categoriesCacheKey(userID)
		var cached []domain.Category
		// Categories change rarely, so the cache TTL is generous
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		categories, err := st.ListCategories(ctx, userID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to list categories")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, categories, categoriesCacheTTL)
		c.JSON(http.StatusOK, categories)
	}
}
