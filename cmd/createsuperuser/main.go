package main

import (
	"errors"
	"flag"
	"os"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/auth"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/config"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/database"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/post"
	"github.com/ArthurDelaporte/PostPlanner-Back/internal/user"
)

// Crée un compte d'administration, ou promeut un compte existant.
func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email (new account only)")
	password := flag.String("password", "", "admin password (new account only)")
	flag.Parse()

	if *username == "" {
		fail("Missing -username", errors.New("username is required"))
	}

	cfg := config.LoadConfig()
	if err := logs.Init(cfg.LogLevel, ""); err != nil {
		fail("Logger init failed", err)
	}
	if err := database.Connect(cfg.DBUrl, cfg.SQLitePath, cfg.DBLogLevel); err != nil {
		fail("Database connection failed", err)
	}
	if err := database.Migrate(&user.User{}, &auth.Token{}, &post.Post{}, &post.ImagePrompt{}); err != nil {
		fail("Database migration failed", err)
	}

	existing, err := user.FindByUsername(*username)
	switch {
	case err == nil:
		if err := user.SetStaff(existing.ID, true); err != nil {
			fail("Promotion failed", err)
		}
		logs.LogJSON("INFO", "Existing user promoted to staff", map[string]interface{}{"userID": existing.ID})
		return
	case !errors.Is(err, user.ErrNotFound):
		fail("User lookup failed", err)
	}

	if *email == "" || *password == "" {
		fail("Missing -email or -password", errors.New("email and password are required for a new account"))
	}

	hash, err := auth.NewBcryptHasher().Hash(*password)
	if err != nil {
		fail("Password hashing failed", err)
	}
	admin := user.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: hash,
		IsStaff:      true,
		IsSuperuser:  true,
	}
	if err := user.Create(&admin); err != nil {
		fail("Admin creation failed", err)
	}
	logs.LogJSON("INFO", "Superuser created", map[string]interface{}{"userID": admin.ID})
}

func fail(message string, err error) {
	logs.LogJSON("FATAL", message, map[string]interface{}{"error": err.Error()})
	os.Exit(1)
}
