package api

import (
	"net/http" // HTTP status codes
	"time"     // Current month defaults

	"finance_tracker/internal/insight"    // External completion API client
	"finance_tracker/internal/middleware" // Authenticated user lookup
	"finance_tracker/internal/store"      // Persistence layer

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for AI insights
type InsightsRequest struct {
	Month int `json:"month"` // Calendar month, 1-12
	Year  int `json:"year"`  // Calendar year
}

// InsightsHandler assembles a prompt from the month's transactions and
// returns the external model's commentary. Upstream failures are logged
// in full but surface to the client as a generic 500.
func InsightsHandler(st *store.Store, client *insight.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req InsightsRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Default to the current month when the period is omitted
		now := time.Now()
		if req.Month == 0 {
			req.Month = int(now.Month())
		}
		if req.Year == 0 {
			req.Year = now.Year()
		}
		if req.Month < 1 || req.Month > 12 || req.Year < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month or year"})
			return
		}
		ctx := c.Request.Context()
		transactions, err := st.ListTransactionsForPeriod(ctx, userID, req.Month, req.Year)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to fetch transactions for insights")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate insights"})
			return
		}
		prompt := insight.BuildPrompt(transactions)
		// The external call runs outside any database transaction and is
		// bounded by the client's timeout
		text, err := client.Generate(ctx, prompt)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"month":   req.Month,   // Requested month
				"year":    req.Year,    // Requested year
				"error":   err.Error(), // Upstream error detail, logged only
			}).Error("Insight generation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate insights"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"insights": text})
	}
}
