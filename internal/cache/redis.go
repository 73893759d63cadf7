package cache

import (
	"context"
	"time"

	"pattamap/internal/core"

	"github.com/redis/go-redis/v9"
)

type redisBackend struct {
	client *redis.Client
}

func newRedisBackend(client *redis.Client) *redisBackend {
	return &redisBackend{client: client}
}

func (backend *redisBackend) Name() string { return "redis" }

func (backend *redisBackend) Get(contextValue context.Context, key string) (string, bool, error) {
	value, getError := backend.client.Get(contextValue, key).Result()
	if getError == redis.Nil {
		return "", false, nil
	}
	if getError != nil {
		return "", false, getError
	}
	return value, true, nil
}

func (backend *redisBackend) Set(contextValue context.Context, key string, value string, ttl time.Duration) error {
	return backend.client.SetEx(contextValue, key, value, ttl).Err()
}

func (backend *redisBackend) Delete(contextValue context.Context, keys ...string) error {
	return backend.client.Del(contextValue, keys...).Err()
}

// Invalidate 用 SCAN 逐批找出符合 pattern 的 key 再刪，避免 KEYS 卡住 Redis。
func (backend *redisBackend) Invalidate(contextValue context.Context, pattern string) (int64, error) {
	var deleted int64
	var cursor uint64
	for {
		keys, nextCursor, scanError := backend.client.Scan(contextValue, cursor, pattern, 200).Result()
		if scanError != nil {
			return deleted, scanError
		}
		if len(keys) > 0 {
			count, delError := backend.client.Del(contextValue, keys...).Result()
			deleted += count
			if delError != nil {
				return deleted, delError
			}
		}
		cursor = nextCursor
		if cursor == 0 {
			return deleted, nil
		}
	}
}

// Clear 只清掉本服務前綴下的 key，不碰共用 Redis 的其他 keyspace。
func (backend *redisBackend) Clear(contextValue context.Context) error {
	_, clearError := backend.Invalidate(contextValue, string(core.RedisKeyServerName)+":*")
	return clearError
}
