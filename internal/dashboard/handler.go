package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
)

// DashboardStats GET /api/dashboard/stats/
func DashboardStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	stats, err := Compute(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		logs.LogJSON("ERROR", "Error computing dashboard stats", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}
