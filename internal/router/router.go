// Package router assemble le moteur gin et toutes les routes de l'API.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/admin"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/auth"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/dashboard"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/metrics"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/middleware"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/validation"
)

func Setup(tokens auth.TokenService, hasher auth.PasswordHasher) *gin.Engine {
	validation.RegisterBindings()

	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery(), metrics.Default().Middleware())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	authHandler := auth.NewHandler(hasher, tokens)
	requireToken := middleware.TokenAuthMiddleware(tokens)

	// Inscription & Connexion
	api.POST("/auth/register/", authHandler.Register)
	api.POST("/auth/login/", authHandler.Login)

	protected := api.Group("", requireToken)
	protected.POST("/auth/logout/", authHandler.Logout)
	protected.GET("/auth/me/", user.GetMe)

	// Posts
	protected.GET("/posts/", post.ListPosts)
	protected.POST("/posts/", post.CreatePost)
	protected.GET("/posts/status/:status/", post.PostsByStatus)
	protected.GET("/posts/platform/:platform/", post.PostsByPlatform)
	protected.GET("/posts/:id/", post.GetPost)
	protected.PUT("/posts/:id/", post.UpdatePost)
	protected.DELETE("/posts/:id/", post.DeletePost)

	protected.GET("/dashboard/stats/", dashboard.DashboardStats)

	// Administration
	adminGroup := protected.Group("/admin", middleware.StaffOnlyMiddleware())
	adminGroup.GET("/posts/", admin.ListPosts)
	adminGroup.GET("/stats/", admin.GetStats)

	return r
}
