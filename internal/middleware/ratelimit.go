package middleware

import (
	"errors"
	"strconv"

	"pattamap/config"
	"pattamap/internal/core"
	"pattamap/internal/database/redis/repository"
	cErr "pattamap/internal/pkg/error"
	"pattamap/internal/pkg/response"
	"pattamap/internal/telemetry"

	"github.com/gin-gonic/gin"
)

const (
	defaultWindowSeconds = 60
	defaultLimitCount    = 120
)

// RateLimit 公開 API 的來源 IP 限流。Redis 不可用時 repository 一律放行，
// 限流失效不會變成停機。
type RateLimit struct {
	trace                 *telemetry.Trace
	metric                *telemetry.Metric
	rateLimiterRepository *repository.RateLimiterRepository
	windowSeconds         int64
	limitCount            int
	enabled               bool
}

func NewRateLimit(
	conf *config.Configuration,
	trace *telemetry.Trace,
	metric *telemetry.Metric,
	rateLimiterRepository *repository.RateLimiterRepository,
) *RateLimit {
	windowSeconds := conf.RateLimit.WindowSeconds
	if windowSeconds <= 0 {
		windowSeconds = defaultWindowSeconds
	}
	limitCount := conf.RateLimit.LimitCount
	if limitCount <= 0 {
		limitCount = defaultLimitCount
	}
	return &RateLimit{
		trace:                 trace,
		metric:                metric,
		rateLimiterRepository: rateLimiterRepository,
		windowSeconds:         windowSeconds,
		limitCount:            limitCount,
		enabled:               conf.RateLimit.Enabled,
	}
}

// Guard 以來源 IP 為 key，scope 區分路由群組
func (middleware *RateLimit) Guard(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !middleware.enabled {
			c.Next()
			return
		}
		ctx, _, end := middleware.trace.WithSpan(middleware.trace.GetTraceContext(c), string(core.SpanRateLimitMiddleware))

		clientKey := c.ClientIP()
		remaining, ttlSec, consumeError := middleware.rateLimiterRepository.Consume(
			ctx,
			clientKey,
			scope,
			middleware.windowSeconds,
			middleware.limitCount,
		)
		if consumeError != nil && !errors.Is(consumeError, repository.ErrRateLimitExceeded) {
			// 讀寫 Redis 失敗不阻斷主流程
			end(nil)
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(middleware.limitCount))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		if ttlSec > 0 {
			c.Header("X-RateLimit-Reset", strconv.FormatInt(ttlSec, 10))
		}

		if errors.Is(consumeError, repository.ErrRateLimitExceeded) {
			if ttlSec > 0 {
				c.Header("Retry-After", strconv.FormatInt(ttlSec, 10))
			}
			middleware.countLimited(c.FullPath())
			err := cErr.RateLimitExceeded("rate limit exceeded")
			end(err)
			response.AbortWithError(c, err)
			return
		}
		end(nil)
		c.Next()
	}
}

func (middleware *RateLimit) countLimited(endpoint string) {
	if middleware.metric != nil && middleware.metric.RateLimitTotal != nil {
		middleware.metric.RateLimitTotal.WithLabelValues(endpoint).Inc()
	}
}
