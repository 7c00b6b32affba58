package db

import (
	"context"
	"fmt"
	"go-blog-api/config"
	"go-blog-api/logger"
	"net"

	"github.com/redis/go-redis/v9"
)

// ConnectRedis creates a client and pings the server once.
func ConnectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	redisAddr := net.JoinHostPort(cfg.Host, cfg.Port)

	rdb := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		logger.Log.WithError(err).Error("Failed to ping Redis")
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	logger.Log.WithField("address", redisAddr).Info("Redis connection established successfully")
	return rdb, nil
}
