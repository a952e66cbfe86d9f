package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	DBUrl         string
	SQLitePath    string
	TokenSecret   string
	LogLevel      string
	DBLogLevel    string
	LogstashAddr  string
	RedisAddr     string
	RedisPassword string
	StatsCacheTTL time.Duration
	GinMode       string
}

// LoadConfig lit le .env (s'il existe) puis les variables d'environnement
func LoadConfig() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "8080"),
		DBUrl:         getEnv("DATABASE_URL", ""),
		SQLitePath:    getEnv("SQLITE_PATH", "planner.db"),
		TokenSecret:   getEnv("TOKEN_SECRET", ""),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		DBLogLevel:    getEnv("DB_LOG_LEVEL", "warn"),
		LogstashAddr:  getEnv("LOGSTASH_ADDR", ""),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		StatsCacheTTL: getDuration("STATS_CACHE_TTL", time.Minute),
		GinMode:       getEnv("GIN_MODE", ""),
	}
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
