package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware rejects requests without a valid bearer token and sets
// user_id in the gin context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := userIDFromRequest(c, jwtSecret)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		c.Set("user_id", userID)
		c.Next()
	}
}

// OptionalAuthMiddleware sets user_id when a valid token is present and
// lets anonymous requests through untouched. Used by endpoints that serve
// both owners and public respondents.
func OptionalAuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, ok := userIDFromRequest(c, jwtSecret); ok {
			c.Set("user_id", userID)
		}
		c.Next()
	}
}

func userIDFromRequest(c *gin.Context, jwtSecret string) (string, bool) {
	header := c.GetHeader("Authorization")
	if header == "" {
		return "", false
	}
	raw := strings.TrimPrefix(header, "Bearer ")
	if raw == header {
		return "", false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return "", false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
