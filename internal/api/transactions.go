package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"finance_tracker/internal/domain"     // Importing domain models
	"finance_tracker/internal/middleware" // Authenticated user lookup
	"finance_tracker/internal/store"      // Persistence layer
	"finance_tracker/internal/utils"      // Cache helpers

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Decimal type for money amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// Request struct for creating and updating transactions
type TransactionRequest struct {
	Amount      decimal.Decimal `json:"amount"`      // Amount, accepts JSON number or string
	CategoryID  *uint           `json:"categoryId"`  // Optional category reference
	Description string          `json:"description"` // Free-text description
	Type        string          `json:"type"`        // income or expense
	Date        string          `json:"date"`        // Calendar date, YYYY-MM-DD
}

// toDomain validates the request and converts it to a domain transaction.
// On failure it returns a nil transaction and a client-facing message.
func (r *TransactionRequest) toDomain() (*domain.Transaction, string) {
	// amount, type and date are required
	if r.Amount.IsZero() || r.Type == "" || r.Date == "" {
		return nil, "Missing required fields"
	}
	if !r.Amount.IsPositive() {
		return nil, "Amount must be a positive number"
	}
	if !domain.ValidType(r.Type) {
		return nil, "Type must be income or expense"
	}
	date, err := domain.ParseDate(r.Date)
	if err != nil {
		return nil, "Date must be in YYYY-MM-DD format"
	}
	return &domain.Transaction{
		Amount:      r.Amount,      // Validated positive amount
		CategoryID:  r.CategoryID,  // Optional category reference
		Description: r.Description, // Free-text description
		Type:        r.Type,        // income or expense
		Date:        date,          // Parsed calendar date
	}, ""
}

// ListTransactionsHandler returns all of the user's transactions, newest first
func ListTransactionsHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		cacheKey := transactionsCacheKey(userID)
		var cached []domain.Transaction
		// Serve from cache when possible
		if found, err := utils.GetCache(ctx, rdb, cacheKey, &cached); err == nil && found {
			c.JSON(http.StatusOK, cached)
			return
		}
		transactions, err := st.ListTransactions(ctx, userID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to list transactions")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
			return
		}
		_ = utils.SetCache(ctx, rdb, cacheKey, transactions, transactionsCacheTTL)
		c.JSON(http.StatusOK, transactions)
	}
}

// CreateTransactionHandler records a new transaction for the user
func CreateTransactionHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate fields before touching persistence
		tx, msg := req.toDomain()
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		ctx := c.Request.Context()
		created, err := st.CreateTransaction(ctx, userID, tx)
		if err != nil {
			// A category reference outside the user's own set is a client error
			if errors.Is(err, store.ErrInvalidCategory) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // User ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
			return
		}
		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,                         // User ID
			"transaction_id": created.ID,                     // New transaction ID
			"amount":         created.Amount.String(),        // Transaction amount
			"type":           created.Type,                   // Transaction type
			"date":           created.Date.Format(domain.DateLayout), // Calendar date
		}).Info("Transaction created")
		// Drop stale cached reads for this user
		invalidateTransactionCaches(ctx, rdb, userID)
		c.JSON(http.StatusCreated, created)
	}
}

// UpdateTransactionHandler replaces the fields of the user's transaction
func UpdateTransactionHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		// A non-numeric ID can never name an owned row
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		var req TransactionRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		tx, msg := req.toDomain()
		if msg != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": msg})
			return
		}
		ctx := c.Request.Context()
		updated, err := st.UpdateTransaction(ctx, uint(id), userID, tx)
		if err != nil {
			// Absent and foreign rows both surface as not found
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			if errors.Is(err, store.ErrInvalidCategory) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id":        userID,      // User ID
				"transaction_id": id,          // Transaction ID
				"error":          err.Error(), // Error message
			}).Error("Failed to update transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
			return
		}
		// Log successful update
		logrus.WithFields(logrus.Fields{
			"user_id":        userID,     // User ID
			"transaction_id": updated.ID, // Transaction ID
		}).Info("Transaction updated")
		invalidateTransactionCaches(ctx, rdb, userID)
		c.JSON(http.StatusOK, updated)
	}
}

// DeleteTransactionHandler removes the user's transaction
func DeleteTransactionHandler(st *store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := middleware.UserID(c) // Get userID from context
		if !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		ctx := c.Request.Context()
		if err := st.DeleteTransaction(ctx, uint(id), userID); err != nil {
			// A second delete of the same row also lands here
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id":        userID,      // User ID
				"transaction_id": id,          // Transaction ID
				"error":          err.Error(), // Error message
			}).Error("Failed to delete transaction")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
			return
		}
		// Log successful deletion
		logrus.WithFields(logrus.Fields{
			"user_id":        userID, // User ID
			"transaction_id": id,     // Transaction ID
		}).Info("Transaction deleted")
		invalidateTransactionCaches(ctx, rdb, userID)
		c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
	}
}
