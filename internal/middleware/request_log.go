package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
)

const RequestIDHeader = "X-Request-ID"

const slowRequest = 2 * time.Second

// RequestLogger attribue un identifiant à chaque requête et journalise sa durée
func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		duration := time.Since(start)
		fields := map[string]interface{}{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"duration":   duration.String(),
			"remote_ip":  c.ClientIP(),
		}
		if userID := c.GetUint("user_id"); userID != 0 {
			fields["userID"] = userID
		}

		if duration > slowRequest {
			logs.LogJSON("WARN", "Slow request detected", fields)
		} else {
			logs.LogJSON("INFO", "Request completed", fields)
		}
	}
}
