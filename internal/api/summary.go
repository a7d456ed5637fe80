package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Query parameter parsing
	"time"     // Current month defaults

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Authenticated user lookup
	"finance_tracker/internal/store"      // Persistence layer
	"finance_tracker/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal arithmetic for percentages
	"github.com/sirupsen/logrus"    // Logging library
)

// periodFromQuery reads month and year from the query string, defaulting
// to the current calendar month. Returns ok=false on malformed values.
func periodFromQuery(c *gin.Context) (month, year int, ok bool) {
	now := time.Now()
	month, year = int(now.Month()), now.Year()
	if m := c.Query("month"); m != "" {
		v, err := strconv.Atoi(m)
		if err != nil || v < 1 || v > 12 {
			return 0, 0, false
		}
		month = v
	}
	if y := c.Query("year"); y != "" {
		v, err := strconv.Atoi(y)
		if err != nil || v < 1 {
			return 0, 0, false
		}
		year = v
	}
	return month, year, true
}

// MonthlySummaryHandler returns income/expense totals and counts for a month
func MonthlySummaryHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		month, year, ok := periodFromQuery(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := monthlySummaryCacheKey(userID, month, year)
		var cached []domain.TypeSummary
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		// An empty month yields an empty array, never an error
		summary, err := st.MonthlySummary(ctx, userID, month, year)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"month":   month,       // Requested month
				"year":    year,        // Requested year
				"error":   err.Error(), // Error message
			}).Error("Failed to compute monthly summary")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, summary, summaryCacheTTL)
		c.JSON(http.StatusOK, summary)
	}
}

// CategorySummaryHandler returns per-category expense totals for a month,
// largest first, with each category's share of the total in percent
func CategorySummaryHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		month, year, ok := periodFromQuery(c)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := categorySummaryCacheKey(userID, month, year)
		var cached []domain.CategorySummary
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		summary, err := st.CategorySummary(ctx, userID, month, year)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"month":   month,       // Requested month
				"year":    year,        // Requested year
				"error":   err.Error(), // Error message
			}).Error("Failed to compute category summary")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch summary"})
			return
		}
		applyPercentages(summary)
		_ = utils.SetCache(ctx, rdb, cacheKey, summary, summaryCacheTTL)
		c.JSON(http.StatusOK, summary)
	}
}

// applyPercentages computes each category's share of the grand total,
// rounded to one decimal place. A zero grand total leaves every
// percentage at 0 rather than dividing by zero.
func applyPercentages(rows []domain.CategorySummary) {
	grandTotal := decimal.Zero
	for _, r := range rows {
		grandTotal = grandTotal.Add(r.Total)
	}
	if !grandTotal.IsPositive() {
		return
	}
	hundred := decimal.NewFromInt(100)
	for i := range rows {
		pct, _ := rows[i].Total.Mul(hundred).Div(grandTotal).Round(1).Float64()
		rows[i].Percentage = pct
	}
}
