// Package config loads the application configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"catalog_backend/internal/platform/db"
	"catalog_backend/internal/platform/logger"
	"catalog_backend/internal/platform/redis"
)

// Config holds the application configuration.
type Config struct {
	Port          string
	Debug         bool
	RunMigrations bool
	CORSOrigins   []string

	// TokenCacheTTL bounds how long a token lookup stays in Redis.
	TokenCacheTTL time.Duration
	// TokenRetention is how long an expired token is kept before the purge job deletes it.
	TokenRetention time.Duration
	// PurgeSchedule is the cron expression of the purge job.
	PurgeSchedule string

	DB    db.Config
	Redis redis.Config
	Log   logger.Config
}

// Load reads .env when present, then the environment. Variables already set
// in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds the configuration from the current environment and defaults.
func FromEnv() (*Config, error) {
	var invalid []string

	debug, err := strconv.ParseBool(getEnv("APP_DEBUG", "false"))
	if err != nil {
		invalid = append(invalid, "APP_DEBUG")
	}
	migrate, err := strconv.ParseBool(getEnv("RUN_MIGRATIONS", "false"))
	if err != nil {
		invalid = append(invalid, "RUN_MIGRATIONS")
	}
	cacheTTL, err := time.ParseDuration(getEnv("TOKEN_CACHE_TTL", "5m"))
	if err != nil {
		invalid = append(invalid, "TOKEN_CACHE_TTL")
	}
	retention, err := time.ParseDuration(getEnv("TOKEN_RETENTION", "24h"))
	if err != nil || retention < 0 {
		invalid = append(invalid, "TOKEN_RETENTION")
	}
	if len(invalid) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(invalid, ", "))
	}

	return &Config{
		Port:           getEnv("PORT", "8080"),
		Debug:          debug,
		RunMigrations:  migrate,
		CORSOrigins:    splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
		TokenCacheTTL:  cacheTTL,
		TokenRetention: retention,
		PurgeSchedule:  getEnv("PURGE_SCHEDULE", "@hourly"),
		DB:             db.LoadConfigFromEnv(),
		Redis:          redis.LoadConfigFromEnv(),
		Log: logger.Config{
			Level:  os.Getenv("LOG_LEVEL"),
			Format: os.Getenv("LOG_FORMAT"),
		},
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
