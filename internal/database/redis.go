package database

import (
	"context"
	"fmt"
	"time"

	"github.com/BabyGoatsInc/baby-goats-service/internal/config"
	"github.com/redis/go-redis/v9"
)

// InitRedis 初始化Redis连接，用于排行榜缓存
func InitRedis(cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}
