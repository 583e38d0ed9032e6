package redis

import (
	"context"
	"fmt"
	"time"

	appConfig "foody/config"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to redis and verifies the connection.
func NewClient(cfg appConfig.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}
