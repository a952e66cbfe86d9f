package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/smoke"
)

func main() {
	baseURL := flag.String("url", "http://localhost:8080/api", "API base URL")
	username := flag.String("username", "testuser", "username to register or log in with")
	email := flag.String("email", "test@example.com", "email used at registration")
	password := flag.String("password", "testpass123", "password")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	results, err := smoke.NewClient(*baseURL).Run(ctx, *username, *email, *password)
	for _, r := range results {
		logs.LogJSON("INFO", "Smoke step", map[string]interface{}{
			"step":   r.Step,
			"status": r.Status,
			"body":   string(r.Body),
		})
	}
	if err != nil {
		logs.LogJSON("ERROR", "Smoke run failed", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}
