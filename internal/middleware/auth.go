package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TokenValidator validates a bearer token and returns the caller's user id.
type TokenValidator interface {
	ValidateToken(tokenString string) (int64, error)
}

// userIDKey is the gin context key carrying the authenticated caller's id.
// Identity is request-scoped; nothing in this service holds a current user
// globally.
const userIDKey = "userID"

// AuthMiddleware creates middleware for JWT authentication
func AuthMiddleware(validator TokenValidator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get the Authorization header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Check if it's a Bearer token
		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || headerParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format"})
			c.Abort()
			return
		}

		// Validate the token
		tokenString := headerParts[1]
		userID, err := validator.ValidateToken(tokenString)
		if err != nil {
			logger.Debug("token validation failed", zap.Error(err))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Set user ID in context
		c.Set(userIDKey, userID)
		c.Next()
	}
}

// CallerID returns the authenticated user id set by AuthMiddleware.
func CallerID(c *gin.Context) (int64, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

// ServiceAuthMiddleware creates middleware for authenticating
// service-to-service requests with a shared key.
func ServiceAuthMiddleware(expectedKey string, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		serviceKey := c.GetHeader("X-Service-Key")
		if serviceKey == "" || serviceKey != expectedKey {
			logger.Warn("Service request with invalid service key",
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid service key"})
			c.Abort()
			return
		}

		c.Next()
	}
}
