package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/auth"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
)

// TokenAuthMiddleware accepte "Authorization: Token <clé>" (ou "Bearer <clé>")
func TokenAuthMiddleware(tokens auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		key, ok := extractToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}

		userID, err := tokens.Verify(key)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidToken) {
				logs.LogJSON("ERROR", "Token verification error", map[string]interface{}{
					"error": err.Error(),
					"route": c.FullPath(),
				})
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

func extractToken(header string) (string, bool) {
	scheme, key, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "token", "bearer":
	default:
		return "", false
	}
	key = strings.TrimSpace(key)
	return key, key != ""
}
