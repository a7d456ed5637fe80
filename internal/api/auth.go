package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"finance_tracker/internal/domain" // Importing domain models
	"finance_tracker/internal/store"  // Persistence layer
	"finance_tracker/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Request struct for registration
type RegisterRequest struct {
	Email    string `json:"email"`    // Email must be provided
	Password string `json:"password"` // Password must be provided
	Name     string `json:"name"`     // Name must be provided
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email"`    // Email must be provided
	Password string `json:"password"` // Password must be provided
}

// Response struct for authentication
type AuthResponse struct {
	User  *domain.User `json:"user"`  // Registered or authenticated user
	Token string       `json:"token"` // Signed JWT token
}

// isValidEmail does a light sanity check on the email shape
func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// RegisterHandler creates a new user with the four default categories
// and returns a signed token
func RegisterHandler(st *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// All three fields are required
		if req.Email == "" || req.Password == "" || req.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
			return
		}
		// Normalize email to lowercase so uniqueness is case-insensitive
		email := strings.ToLower(strings.TrimSpace(req.Email))
		if !isValidEmail(email) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid email address"})
			return
		}
		// Hash the password before it touches the database
		hash, err := utils.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		ctx := c.Request.Context()
		user, err := st.CreateUser(ctx, email, req.Name, hash)
		if err != nil {
			// Duplicate email is a conflict, everything else is internal
			if errors.Is(err, store.ErrDuplicateEmail) {
				c.JSON(http.StatusConflict, gin.H{"error": "Email already exists"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"email": email,       // Attempted email
				"error": err.Error(), // Error message
			}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Seed the four starter categories for the new user
		if err := st.CreateDefaultCategories(ctx, user.ID); err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id": user.ID,     // New user ID
				"error":   err.Error(), // Error message
			}).Error("Failed to create default categories")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
			return
		}
		// Issue a token so the client is signed in immediately
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,    // New user ID
			"email":   user.Email, // Registered email
		}).Info("User registered")
		c.JSON(http.StatusCreated, AuthResponse{User: user, Token: token})
	}
}

// LoginHandler authenticates a user and returns a JWT token
func LoginHandler(st *store.Store, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Both fields are required
		if req.Email == "" || req.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Missing email or password"})
			return
		}
		email := strings.ToLower(strings.TrimSpace(req.Email))
		user, err := st.FindUserByEmail(c.Request.Context(), email)
		if err != nil {
			// Unknown email and wrong password get the same response
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Compare provided password with stored hash
		if !utils.CheckPassword(req.Password, user.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
			return
		}
		// Generate JWT token
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{User: user, Token: token})
	}
}
