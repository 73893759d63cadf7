package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"pattamap/internal/core"
	client "pattamap/internal/database/client"
	"pattamap/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

var ProviderSet = wire.NewSet(NewStore)

// ErrPatternUnsupported in-process fallback 不支援 pattern invalidation
var ErrPatternUnsupported = errors.New("pattern invalidation unsupported by in-process cache")

// Backend 快取後端的最小介面；值一律為序列化後的字串
type Backend interface {
	Get(contextValue context.Context, key string) (value string, found bool, returnedError error)
	Set(contextValue context.Context, key string, value string, ttl time.Duration) error
	Delete(contextValue context.Context, keys ...string) error
	Invalidate(contextValue context.Context, pattern string) (deletedCount int64, returnedError error)
	Clear(contextValue context.Context) error
	Name() string
}

// Store 讀取加速層。永遠不是硬依賴：任何失敗都等同「尚未快取」，
// 由呼叫端回到權威資料來源。
type Store struct {
	logger  *zap.Logger
	trace   *telemetry.Trace
	metric  *telemetry.Metric
	backend Backend
}

// NewStore 有 Redis 就用 Redis，否則退回 in-process map（60 秒掃一次過期）。
func NewStore(
	logger *zap.Logger,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	redisClient *client.RedisClient,
) (*Store, func(), error) {

	store := &Store{logger: logger, trace: trace, metric: metric}

	if redisClient.Available() {
		store.backend = newRedisBackend(redisClient.Client())
		logger.Info("cache store using Redis backend")
		return store, func() {}, nil
	}

	memory := newMemoryBackend(defaultSweepInterval, time.Now)
	store.backend = memory
	logger.Info("cache store using in-process backend")

	cleanup := func() {
		memory.stopJanitor()
	}
	return store, cleanup, nil
}

// Get 反序列化到 dest；任何失敗都視為 cache miss（記 warning，不往外丟）。
func (store *Store) Get(contextValue context.Context, key string, dest any) bool {
	_, span, end := store.trace.WithSpan(contextValue)
	defer end(nil)

	meta := core.TraceCacheMeta{Key: key, Op: "get", Backend: store.backend.Name()}

	raw, found, getError := store.backend.Get(contextValue, key)
	if getError != nil {
		errText := getError.Error()
		meta.Error = &errText
		store.trace.ApplyTraceAttributes(span, meta)
		store.logger.Warn("cache get failed", zap.String("key", key), zap.Error(getError))
		store.countMiss(key)
		return false
	}
	if !found {
		store.trace.ApplyTraceAttributes(span, meta)
		store.countMiss(key)
		return false
	}
	if unmarshalError := json.Unmarshal([]byte(raw), dest); unmarshalError != nil {
		errText := unmarshalError.Error()
		meta.Error = &errText
		store.trace.ApplyTraceAttributes(span, meta)
		store.logger.Warn("cache value malformed, treating as miss", zap.String("key", key), zap.Error(unmarshalError))
		store.countMiss(key)
		return false
	}

	meta.Hit = true
	store.trace.ApplyTraceAttributes(span, meta)
	store.countHit(key)
	return true
}

// Set 序列化後以指定 TTL 寫入；失敗吞掉只記 log（快取只是加速，不是正確性依賴）。
func (store *Store) Set(contextValue context.Context, key string, value any, ttlSeconds int) {
	_, span, end := store.trace.WithSpan(contextValue)
	defer end(nil)

	meta := core.TraceCacheMeta{Key: key, Op: "set", TTLSec: ttlSeconds, Backend: store.backend.Name()}
	store.trace.ApplyTraceAttributes(span, meta)

	raw, marshalError := json.Marshal(value)
	if marshalError != nil {
		store.logger.Warn("cache set: marshal failed", zap.String("key", key), zap.Error(marshalError))
		return
	}
	if setError := store.backend.Set(contextValue, key, string(raw), time.Duration(ttlSeconds)*time.Second); setError != nil {
		store.logger.Warn("cache set failed", zap.String("key", key), zap.Error(setError))
	}
}

// Delete 移除指定 key
func (store *Store) Delete(contextValue context.Context, keys ...string) {
	if len(keys) == 0 {
		return
	}
	_, span, end := store.trace.WithSpan(contextValue)
	defer end(nil)
	store.trace.ApplyTraceAttributes(span, core.TraceCacheMeta{Key: keys[0], Op: "delete", Backend: store.backend.Name()})

	if deleteError := store.backend.Delete(contextValue, keys...); deleteError != nil {
		store.logger.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(deleteError))
	}
}

// Invalidate 刪除所有符合 pattern 的 key。
// in-process fallback 不支援：記 warning 後 no-op（能力缺口，不是 silent bug）。
func (store *Store) Invalidate(contextValue context.Context, pattern string) {
	_, span, end := store.trace.WithSpan(contextValue)
	defer end(nil)
	store.trace.ApplyTraceAttributes(span, core.TraceCacheMeta{Key: pattern, Op: "invalidate", Backend: store.backend.Name()})

	deleted, invalidateError := store.backend.Invalidate(contextValue, pattern)
	if errors.Is(invalidateError, ErrPatternUnsupported) {
		store.logger.Warn("cache invalidate unsupported on in-process backend, skipped", zap.String("pattern", pattern))
		return
	}
	if invalidateError != nil {
		store.logger.Warn("cache invalidate failed", zap.String("pattern", pattern), zap.Error(invalidateError))
		return
	}
	store.logger.Debug("cache invalidated", zap.String("pattern", pattern), zap.Int64("deleted", deleted))
}

// Clear 清光所有快取；管理用途
func (store *Store) Clear(contextValue context.Context) {
	_, span, end := store.trace.WithSpan(contextValue)
	defer end(nil)
	store.trace.ApplyTraceAttributes(span, core.TraceCacheMeta{Op: "clear", Backend: store.backend.Name()})

	if clearError := store.backend.Clear(contextValue); clearError != nil {
		store.logger.Warn("cache clear failed", zap.Error(clearError))
	}
}

// BackendName 回報目前使用的後端，health/debug 用
func (store *Store) BackendName() string {
	return store.backend.Name()
}

func (store *Store) countHit(key string) {
	if store.metric != nil && store.metric.CacheHitTotal != nil {
		store.metric.CacheHitTotal.WithLabelValues(Keyspace(key)).Inc()
	}
}

func (store *Store) countMiss(key string) {
	if store.metric != nil && store.metric.CacheMissTotal != nil {
		store.metric.CacheMissTotal.WithLabelValues(Keyspace(key)).Inc()
	}
}
