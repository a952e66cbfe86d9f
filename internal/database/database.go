package database

import (
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ArthurDelaporte/PostPlanner-Back/internal/logs"
)

var DB *gorm.DB

// Connect ouvre Postgres si dsn est fourni, sinon un fichier SQLite local
func Connect(dsn, sqlitePath, logLevel string) error {
	var dialector gorm.Dialector
	if dsn != "" {
		dialector = postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		})
	} else {
		dialector = sqlite.Open(SQLiteDSN(sqlitePath))
	}

	db, err := Open(dialector, logLevel)
	if err != nil {
		return err
	}
	DB = db

	logs.LogJSON("INFO", "Database connected", map[string]interface{}{
		"driver": dialector.Name(),
	})
	return nil
}

// Open configure gorm de la même façon pour le serveur et pour les tests
func Open(dialector gorm.Dialector, logLevel string) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.New(logs.Logger(), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  parseLogLevel(logLevel),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connexion base de données: %w", err)
	}
	return db, nil
}

// Migrate crée ou met à jour les tables des modèles fournis
func Migrate(models ...interface{}) error {
	if err := DB.AutoMigrate(models...); err != nil {
		return fmt.Errorf("migration: %w", err)
	}
	return nil
}

// SQLiteDSN active les clés étrangères, nécessaires au ON DELETE CASCADE
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on"
}

func parseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
