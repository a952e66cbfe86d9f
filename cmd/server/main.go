package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/auth"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/cache"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/config"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/router"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

func main() {
	cfg := config.LoadConfig()

	if err := logs.Init(cfg.LogLevel, cfg.LogstashAddr); err != nil {
		fatal("Logger init failed", err)
	}
	if cfg.TokenSecret == "" {
		fatal("TOKEN_SECRET manquant", errors.New("TOKEN_SECRET is required"))
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	if err := database.Connect(cfg.DBUrl, cfg.SQLitePath, cfg.DBLogLevel); err != nil {
		fatal("Database connection failed", err)
	}
	if err := database.Migrate(&user.User{}, &auth.Token{}, &post.Post{}, &post.ImagePrompt{}); err != nil {
		fatal("Database migration failed", err)
	}

	// Cache Redis facultatif
	if cfg.RedisAddr != "" {
		if err := cache.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.StatsCacheTTL); err != nil {
			logs.LogJSON("WARN", "Redis unavailable, stats cache disabled", map[string]interface{}{
				"error": err.Error(),
				"addr":  cfg.RedisAddr,
			})
		} else {
			defer cache.Close()
		}
	}

	r := router.Setup(auth.NewDBTokenService(cfg.TokenSecret), auth.NewBcryptHasher())

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logs.LogJSON("INFO", "Server listening", map[string]interface{}{"port": cfg.Port})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal("Server error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logs.LogJSON("ERROR", "Shutdown error", map[string]interface{}{"error": err.Error()})
	}
	logs.LogJSON("INFO", "Server stopped", nil)
}

func fatal(message string, err error) {
	logs.LogJSON("FATAL", message, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}
