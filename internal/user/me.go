package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
)

// GetMe GET /api/auth/me/
func GetMe(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	u, err := FindByID(userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user"})
		logs.LogJSON("ERROR", "User lookup error", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	response := gin.H{"user": u.Public()}
	if u.IsStaff {
		response["is_staff"] = true
	}
	c.JSON(http.StatusOK, response)
}
