package config

import (
	"context"
	"os"

	"github.com/redis/go-redis/v9"
)

// Redis is nil when REDIS_ADDR is not configured; callers treat a nil client
// as "cache disabled" and go straight to the database.
var Redis *redis.Client

// InitRedis connects the optional read cache
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return err
	}

	Redis = client
	return nil
}
