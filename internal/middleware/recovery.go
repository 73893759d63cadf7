package middleware

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"
	"unicode/utf8"

	"pattamap/config"
	"pattamap/internal/core"
	"pattamap/internal/database/fluentd/model"
	"pattamap/internal/database/fluentd/repository"
	cErr "pattamap/internal/pkg/error"
	res "pattamap/internal/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Recovery struct {
	logger            *zap.Logger
	config            *config.Configuration
	fluentdRepository *repository.LogRepository
}

func NewRecovery(
	logger *zap.Logger,
	config *config.Configuration,
	fluentdRepository *repository.LogRepository,
) *Recovery {
	return &Recovery{
		logger:            logger,
		config:            config,
		fluentdRepository: fluentdRepository,
	}
}

func (middleware *Recovery) ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestTime := time.Now()
		if startTime, exists := c.Get("requestDuration"); exists {
			if t, ok := startTime.(time.Time); ok {
				requestTime = t
			}
		}
		RequestID, err := uuid.NewV7()
		if err != nil {
			RequestID = uuid.New()
		}
		// ---- panic recover 必須在 c.Next() 之前註冊 ----
		defer func() {
			if rec := recover(); rec != nil {
				duration := time.Since(requestTime)

				meta := core.TracePanicMeta{
					Path:       c.Request.URL.Path,
					Method:     c.Request.Method,
					ClientIP:   c.ClientIP(),
					UserAgent:  c.Request.UserAgent(),
					DurationMs: float64(duration.Milliseconds()),
					Message:    toSafeString(fmt.Sprint(rec)),
					Stack:      toSafeStack(debug.Stack()),
					Status:     http.StatusInternalServerError,
				}

				middleware.logger.Error("[PANIC] Recovered",
					zap.String("path", meta.Path),
					zap.String("method", meta.Method),
					zap.String("client_ip", meta.ClientIP),
					zap.String("user_agent", meta.UserAgent),
					zap.Duration("duration", duration),
					zap.String("panic", meta.Message),
					zap.String("stacktrace", meta.Stack),
					zap.String("requestId", RequestID.String()),
				)

				// 尚未回寫才輸出
				if !c.Writer.Written() {
					res.FailByErr(c, RequestID.String(), cErr.InternalServer("unexpected panic"))
				}
				middleware.logFailure(c, RequestID.String(), cErr.INTERNAL_ERROR, http.StatusInternalServerError, meta.Message)
				c.Abort()
			}
		}()

		// 執行下游
		c.Next()

		// ---- 統一處理非 panic 的 gin errors（若尚未回寫）----
		if len(c.Errors) > 0 && !c.Writer.Written() {
			duration := time.Since(requestTime)

			// 找第一個 *cErr.Error
			for _, e := range c.Errors {
				if appErr, ok := e.Err.(*cErr.Error); ok {
					middleware.logger.Warn(appErr.Error(),
						zap.Int("code", appErr.ErrorCode()),
						zap.String("data", appErr.ErrorDesc()),
						zap.Duration("duration", duration),
						zap.String("requestId", RequestID.String()),
					)
					middleware.logFailure(c, RequestID.String(), appErr.ErrorCode(), appErr.HttpCode(), appErr.Error())
					res.FailByErr(c, RequestID.String(), appErr)
					c.Abort()
					return
				}
			}

			// 其餘未知錯誤
			unknown := c.Errors.String()
			middleware.logger.Warn("[ERROR] unknown",
				zap.String("error", unknown),
				zap.Duration("duration", duration),
				zap.String("requestId", RequestID.String()),
			)
			middleware.logFailure(c, RequestID.String(), cErr.INTERNAL_ERROR, http.StatusInternalServerError, toSafeString(unknown))
			res.Fail(c, RequestID.String(), http.StatusInternalServerError, cErr.INTERNAL_ERROR, "unknown-error", unknown)
			c.Abort()
			return
		}
	}
}

// logFailure 錯誤回應的稽核
func (middleware *Recovery) logFailure(c *gin.Context, requestID string, errorCode, statusCode int, errorText string) {
	responseMeta := model.ResponseLog{
		RequestID:   requestID,
		ProjectName: middleware.config.App.Name,
		Code:        errorCode,
		StatusCode:  statusCode,
		Error:       errorText,
		ResponseTS:  time.Now().UTC().Format("2006-01-02 15:04:05.999999 UTC"),
		Version:     middleware.config.App.Version,
	}
	if logError := middleware.fluentdRepository.LogResponse(c.Request.Context(), responseMeta); logError != nil {
		middleware.logger.Warn("response audit log failed", zap.Error(logError))
	}
}

// ---- helpers ----

func toSafeString(s string) string {
	const max = 8000
	if utf8.ValidString(s) {
		if len(s) > max {
			return s[:max] + "…"
		}
		return s
	}
	b := []byte(s)
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}

func toSafeStack(b []byte) string {
	const max = 16000
	if utf8.Valid(b) {
		if len(b) > max {
			return string(b[:max]) + "…"
		}
		return string(b)
	}
	if len(b) > max {
		b = b[:max]
	}
	return "b64:" + base64.StdEncoding.EncodeToString(b)
}
