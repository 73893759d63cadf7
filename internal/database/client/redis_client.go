package client

import (
	"context"
	"fmt"

	"pattamap/config"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisClient 連接 Redis。Redis 僅作為快取與限流加速層，
// 未設定或連不上時不視為啟動失敗：Client() 回傳 nil，由上層降級。
type RedisClient struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisClient(logger *zap.Logger, config *config.Configuration) (*RedisClient, func(), error) {
	redisClient := &RedisClient{logger: logger}

	if config.Redis.Host == "" {
		logger.Warn("Redis host not configured, cache falls back to in-process store")
		return redisClient, func() {}, nil
	}

	client, err := redisClient.connectDB(config)
	if err != nil {
		logger.Warn("failed to connect to Redis, cache falls back to in-process store", zap.Error(err))
		return redisClient, func() {}, nil
	}
	logger.Info("Connected to Redis")
	redisClient.client = client

	cleanup := func() {
		logger.Info("closing the Redis resources")
		if err := redisClient.Close(); err != nil {
			logger.Error("failed to close Redis client", zap.Error(err))
		}
	}

	return redisClient, cleanup, nil
}

func (redisClient *RedisClient) connectDB(config *config.Configuration) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", config.Redis.Host, config.Redis.Port),
		Password: config.Redis.Password,
		DB:       config.Redis.DB,
	})
	if _, err := r.Ping(context.Background()).Result(); err != nil {
		return nil, err
	}
	return r, nil
}

// Available 回報是否有可用的 Redis 連線
func (redisClient *RedisClient) Available() bool {
	return redisClient.client != nil
}

// Close 關閉 Redis 連線
func (redisClient *RedisClient) Close() error {
	if redisClient.client == nil {
		return nil
	}
	return redisClient.client.Close()
}

// Client 回傳 Redis 連線；未連線時為 nil
func (redisClient *RedisClient) Client() *redis.Client {
	return redisClient.client
}
