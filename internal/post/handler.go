package post

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/cache"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/metrics"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/validation"
)

// ListPosts GET /api/posts/
func ListPosts(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	posts, err := List(Filter{UserID: userID, Search: strings.TrimSpace(c.Query("search"))})
	if err != nil {
		internalError(c, route, userID, "Error listing posts", err)
		return
	}

	c.JSON(http.StatusOK, NewViews(posts))
}

// CreatePost POST /api/posts/
func CreatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, validation.Errors{"non_field_errors": {msgBadPayload}})
		return
	}

	errs := validation.Errors{}
	in := parseInput(raw, errs)
	validateCreate(&in, errs)
	if !errs.Empty() {
		c.JSON(http.StatusBadRequest, errs)
		logs.LogJSON("WARN", "Invalid post data", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"extra":  errs.Error(),
		})
		return
	}

	newPost := Post{
		UserID:        userID,
		Caption:       *in.Caption,
		Hashtags:      *in.Hashtags,
		Platform:      *in.Platform,
		Status:        *in.Status,
		ScheduledTime: in.ScheduledTime,
	}
	promptText := ""
	if in.ImagePromptText != nil {
		promptText = *in.ImagePromptText
	}

	if err := Create(&newPost, promptText); err != nil {
		internalError(c, route, userID, "Error creating post", err)
		return
	}

	created, err := FindOwned(userID, newPost.ID)
	if err != nil {
		internalError(c, route, userID, "Error reloading post", err)
		return
	}

	invalidateStats(c, userID)
	metrics.Default().PostsCreated.WithLabelValues(created.Platform).Inc()

	c.JSON(http.StatusCreated, NewView(*created))
	logs.LogJSON("INFO", "Post created successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": created.ID,
	})
}

// GetPost GET /api/posts/:id/
func GetPost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	p, ok := loadOwned(c, route, userID)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, NewView(*p))
}

// UpdatePost PUT /api/posts/:id/ (mise à jour partielle)
func UpdatePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	p, ok := loadOwned(c, route, userID)
	if !ok {
		return
	}

	var raw map[string]interface{}
	if err := c.ShouldBindJSON(&raw); err != nil {
		c.JSON(http.StatusBadRequest, validation.Errors{"non_field_errors": {msgBadPayload}})
		return
	}

	errs := validation.Errors{}
	in := parseInput(raw, errs)
	if !errs.Empty() {
		c.JSON(http.StatusBadRequest, errs)
		logs.LogJSON("WARN", "Invalid post update", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": p.ID,
			"extra":  errs.Error(),
		})
		return
	}

	// Update uniquement les champs fournis
	updates := map[string]interface{}{}
	if in.Caption != nil {
		updates["caption"] = *in.Caption
	}
	if in.Hashtags != nil {
		updates["hashtags"] = *in.Hashtags
	}
	if in.Platform != nil {
		updates["platform"] = *in.Platform
	}
	if in.Status != nil {
		updates["status"] = *in.Status
	}
	if in.ScheduledTimeSet {
		updates["scheduled_time"] = in.ScheduledTime
	}

	updated, err := Update(p, updates)
	if err != nil {
		internalError(c, route, userID, "Error updating post", err)
		return
	}

	invalidateStats(c, userID)

	c.JSON(http.StatusOK, NewView(*updated))
	logs.LogJSON("INFO", "Post updated successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": updated.ID,
	})
}

// DeletePost DELETE /api/posts/:id/
func DeletePost(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")

	id, ok := parseID(c.Param("id"))
	if !ok {
		notFound(c)
		return
	}

	if err := Delete(userID, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			notFound(c)
			return
		}
		internalError(c, route, userID, "Error deleting post", err)
		return
	}

	invalidateStats(c, userID)
	metrics.Default().PostsDeleted.Inc()

	c.Status(http.StatusNoContent)
	logs.LogJSON("INFO", "Post deleted successfully", map[string]interface{}{
		"route":  route,
		"userID": userID,
		"postID": id,
	})
}

// PostsByStatus GET /api/posts/status/:status/
func PostsByStatus(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")
	status := c.Param("status")

	if !IsStatus(status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Must be one of: " + strings.Join(Statuses, ", ")})
		return
	}

	posts, err := List(Filter{UserID: userID, Status: status})
	if err != nil {
		internalError(c, route, userID, "Error listing posts by status", err)
		return
	}

	c.JSON(http.StatusOK, NewViews(posts))
}

// PostsByPlatform GET /api/posts/platform/:platform/
func PostsByPlatform(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetUint("user_id")
	platform := c.Param("platform")

	if !IsPlatform(platform) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid platform. Must be one of: " + strings.Join(Platforms, ", ")})
		return
	}

	posts, err := List(Filter{UserID: userID, Platform: platform})
	if err != nil {
		internalError(c, route, userID, "Error listing posts by platform", err)
		return
	}

	c.JSON(http.StatusOK, NewViews(posts))
}

// loadOwned écrit la réponse d'erreur elle-même quand ok vaut false
func loadOwned(c *gin.Context, route string, userID uint) (*Post, bool) {
	id, ok := parseID(c.Param("id"))
	if !ok {
		notFound(c)
		return nil, false
	}

	p, err := FindOwned(userID, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			notFound(c)
			logs.LogJSON("WARN", "Post not found", map[string]interface{}{
				"route":  route,
				"userID": userID,
				"postID": id,
			})
			return nil, false
		}
		internalError(c, route, userID, "Error loading post", err)
		return nil, false
	}
	return p, true
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func notFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "Post not found"})
}

func invalidateStats(c *gin.Context, userID uint) {
	if err := cache.InvalidateStats(c.Request.Context(), userID); err != nil {
		logs.LogJSON("WARN", "Stats cache invalidation failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  c.FullPath(),
			"userID": userID,
		})
	}
}

func internalError(c *gin.Context, route string, userID uint, message string, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	logs.LogJSON("ERROR", message, map[string]interface{}{
		"error":  err.Error(),
		"route":  route,
		"userID": userID,
	})
}
