package middleware

import (
	"github.com/SscSPs/document_reception_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// contextKey is the type of keys stored in request and Gin contexts.
// Using a custom type prevents collisions.
type contextKey string

const (
	loggerCtxKey = contextKey("logger")
	userIDKey    = contextKey("userID")
	userKey      = contextKey("currentUser")
)

// GetUserIDFromContext retrieves the authenticated user ID from the Gin context.
// It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	if userIDVal, exists := c.Get(string(userIDKey)); exists {
		userID, ok := userIDVal.(string)
		return userID, ok
	}
	// check in the request context as well
	if userID, ok := c.Request.Context().Value(userIDKey).(string); ok {
		return userID, true
	}
	return "", false
}

// GetCurrentUserFromContext retrieves the user loaded by AuthMiddleware.
func GetCurrentUserFromContext(c *gin.Context) (*domain.User, bool) {
	if val, exists := c.Get(string(userKey)); exists {
		user, ok := val.(*domain.User)
		return user, ok && user != nil
	}
	if user, ok := c.Request.Context().Value(userKey).(*domain.User); ok && user != nil {
		return user, true
	}
	return nil, false
}

// GetActorFromContext returns the authorization view of the current user.
func GetActorFromContext(c *gin.Context) (domain.Actor, bool) {
	user, ok := GetCurrentUserFromContext(c)
	if !ok {
		return domain.Actor{}, false
	}
	return user.Actor(), true
}
