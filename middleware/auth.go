package middleware

import (
	"net/http"
	"strings"

	"bankfeed-api/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware validates the Bearer token and puts the user's id and
// email into the gin context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid authorization header"})
			c.Abort()
			return
		}

		claims, err := utils.ValidateAccessToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id, or "" outside an
// authenticated request.
func GetUserID(c *gin.Context) string {
	return c.GetString("user_id")
}
