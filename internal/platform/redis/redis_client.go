package redis

import (
	"context"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Config holds the Redis connection parameters.
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Enabled reports whether a Redis host is configured.
func (c Config) Enabled() bool {
	return c.Host != ""
}

// Addr returns host:port, defaulting the port to 6379.
func (c Config) Addr() string {
	port := c.Port
	if port == "" {
		port = "6379"
	}
	return c.Host + ":" + port
}

// LoadConfigFromEnv reads REDIS_HOST, REDIS_PORT and REDIS_PASSWORD.
func LoadConfigFromEnv() Config {
	return Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
}

// NewRedisClient connects to Redis and verifies the connection with a PING.
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	addr := cfg.Addr()

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Error().Err(err).Str("address", addr).Msg("Redis connection failed")
		_ = rdb.Close()
		return nil, err
	}

	log.Info().Str("address", addr).Msg("Redis connection successful")
	return rdb, nil
}
