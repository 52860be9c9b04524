package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"eduleave-api/models"
	"eduleave-api/services"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	Parse(raw string) (*services.Claims, error)
}

// UserLookup loads the account a token was issued for.
type UserLookup interface {
	FindUser(ctx context.Context, id uint) (*models.User, error)
}

// AuthMiddleware validates the bearer token and loads the caller's user row.
// A missing token is 401; a token that fails verification is 403.
func AuthMiddleware(tokens TokenParser, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if authHeader == "" || tokenString == authHeader || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Access token required"})
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
			return
		}

		// Check if user still exists; department and class come from here, not the token.
		user, err := users.FindUser(c.Request.Context(), claims.ID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid token"})
				return
			}
			log.Printf("auth: load user %d: %v", claims.ID, err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
			return
		}

		c.Set(currentUserKey, user)
		c.Set("userID", user.ID)
		c.Set("role", user.Role)

		c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok && user != nil
}

// RequireRole checks if user has one of the given roles
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}

	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		if _, ok := allowed[user.Role]; !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}
