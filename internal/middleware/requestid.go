package middleware

import (
	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // UUID generation
)

// RequestIDKey is the gin context key holding the request ID
const RequestIDKey = "requestID"

// RequestIDMiddleware assigns every request a UUID, reusing an incoming
// X-Request-ID header when present, and echoes it back in the response
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID") // Honor an upstream-assigned ID
		if id == "" {
			id = uuid.NewString() // Otherwise generate one
		}
		c.Set(RequestIDKey, id)
		c.Writer.Header().Set("X-Request-ID", id) // Echo for client correlation
		c.Next()
	}
}

// RequestID returns the request's ID for log correlation
func RequestID(c *gin.Context) string {
	return c.GetString(RequestIDKey)
}
