package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/Keavors/MyFanBoard/internal/config"
)

// NewRedisClient создает новый клиент Redis и проверяет подключение.
// UniversalClient позволяет позже перейти на sentinel/cluster без смены типа.
func NewRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	if len(cfg.Addrs) == 0 {
		if cfg.Addr == "" {
			return nil, fmt.Errorf("redis configuration error: addr or addrs must be provided")
		}
		cfg.Addrs = []string{cfg.Addr}
	}

	options := &redis.UniversalOptions{
		Addrs:    cfg.Addrs,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.MaxRetries != 0 {
		options.MaxRetries = cfg.MaxRetries
	}

	client := redis.NewUniversalClient(options)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis (addrs: %v): %w", cfg.Addrs, err)
	}

	return client, nil
}
