// internal/admin/handler.go
package admin

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// GetStats GET /api/admin/stats/
func GetStats(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	var totalUsers, staffUsers, totalPosts, postsWithPrompt int64

	// Total des utilisateurs
	if err := database.DB.Model(&user.User{}).Count(&totalUsers).Error; err != nil {
		internalError(c, route, userID, err)
		return
	}

	// Comptes d'administration
	if err := database.DB.Model(&user.User{}).Where("is_staff = ?", true).Count(&staffUsers).Error; err != nil {
		internalError(c, route, userID, err)
		return
	}

	// Total des posts
	if err := database.DB.Model(&post.Post{}).Count(&totalPosts).Error; err != nil {
		internalError(c, route, userID, err)
		return
	}

	// Posts avec image prompt (relation 1:1)
	if err := database.DB.Model(&post.ImagePrompt{}).Count(&postsWithPrompt).Error; err != nil {
		internalError(c, route, userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"staff_users":       staffUsers,
		"total_posts":       totalPosts,
		"posts_with_prompt": postsWithPrompt,
	})
	logs.LogJSON("INFO", "Admin stats retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
	})
}

// ListPosts GET /api/admin/posts/
func ListPosts(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	filter := post.Filter{Search: strings.TrimSpace(c.Query("search"))}

	if p := c.Query("platform"); p != "" {
		platform, ok := post.NormalizePlatform(p)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid platform. Must be one of: " + strings.Join(post.Platforms, ", ")})
			return
		}
		filter.Platform = platform
	}
	if s := c.Query("status"); s != "" {
		status, ok := post.NormalizeStatus(s)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: " + strings.Join(post.Statuses, ", ")})
			return
		}
		filter.Status = status
	}

	page := 1
	if p := c.Query("page"); p != "" {
		if parsed, err := strconv.Atoi(p); err == nil && parsed > 0 {
			page = parsed
		}
	}
	limit := defaultLimit
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}

	if page > math.MaxInt32/limit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page."})
		return
	}

	posts, total, err := post.ListPage(filter, limit, (page-1)*limit)
	if err != nil {
		internalError(c, route, userID, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts": post.NewViews(posts),
		"page":  page,
		"limit": limit,
		"total": total,
	})
	logs.LogJSON("INFO", "Admin posts retrieved successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"page":   page,
		"limit":  limit,
		"total":  total,
	})
}

func internalError(c *gin.Context, route string, userID uint, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	logs.LogJSON("ERROR", "Admin query error", map[string]interface{}{
		"error":  err.Error(),
		"route":  route,
		"userID": userID,
	})
}
