package core

const ContextTraceKey = "telemetry_trace_ctx"

// ==== 型別安全 span name ====
// 專案全域建議都寫這裡，方便集中管理
type TraceSpanName string

const (
	SpanHttpRequest         TraceSpanName = "http_request"
	SpanLoggerMiddleware    TraceSpanName = "logger_middleware"
	SpanRecoveryMiddleware  TraceSpanName = "recovery_middleware"
	SpanCorsMiddleware      TraceSpanName = "cors_middleware"
	SpanResponseMiddleware  TraceSpanName = "response_middleware"
	SpanAuthMiddleware      TraceSpanName = "auth_middleware"
	SpanRateLimitMiddleware TraceSpanName = "ratelimit_middleware"
	SpanCompressMiddleware  TraceSpanName = "compress_middleware"
	SpanCronJob             TraceSpanName = "cron_job"
	SpanPushDelivery        TraceSpanName = "push_delivery"
)

// 指標名稱常數
type MetricName string

const (
	MetricHttpRequestsTotal      MetricName = "requests_total"
	MetricHttpRequestDuration    MetricName = "request_duration_seconds"
	MetricCacheHitTotal          MetricName = "cache_hit_total"
	MetricCacheMissTotal         MetricName = "cache_miss_total"
	MetricNotificationSentTotal  MetricName = "notification_sent_total"
	MetricPushFailTotal          MetricName = "push_fail_total"
	MetricCronRunTotal           MetricName = "cron_run_total"
	MetricRateLimitTotal         MetricName = "rate_limited_total"
	MetricAssociationSwapTotal   MetricName = "association_swap_total"
	MetricAssociationRejectTotal MetricName = "association_reject_total"
)

// label name 常數
type MetricLabelName string

const (
	MetricLabelEndpoint MetricLabelName = "endpoint"
	MetricLabelStatus   MetricLabelName = "status"
	MetricLabelReason   MetricLabelName = "reason"
	MetricLabelJob      MetricLabelName = "job"
	MetricLabelKeyspace MetricLabelName = "keyspace"
	MetricLabelType     MetricLabelName = "type"
)

type LoggerRequestMeta struct {
	Method     string            `trace:"request.method"`
	Path       string            `trace:"request.path"`
	FullPath   string            `trace:"request.full_path"`
	Query      string            `trace:"request.query"`
	Body       string            `trace:"request.body"`
	Scheme     string            `trace:"http.scheme"`
	Host       string            `trace:"http.host"`
	UserAgent  string            `trace:"http.user_agent"`
	ContentLen int64             `trace:"http.request_content_length"`
	Proto      string            `trace:"http.flavor"`
	ClientIP   string            `trace:"net.peer.ip"`
	Headers    map[string]string `trace:"http.request.header"`
	Params     map[string]string `trace:"http.request.param"`
}

type TracePanicMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	ClientIP   string  `trace:"net.peer.ip"`
	UserAgent  string  `trace:"http.user_agent"`
	DurationMs float64 `trace:"response.latency_ms"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"error.message"`
	Stack      string  `trace:"error.stack"`
}

type TraceErrorMeta struct {
	Code       int     `trace:"error.code"`
	Message    string  `trace:"error.message"`
	Detail     string  `trace:"error.detail"`
	Status     int     `trace:"http.status_code"`
	DurationMs float64 `trace:"response.latency_ms"`
}

type TraceResponseMeta struct {
	Path       string  `trace:"http.path"`
	Method     string  `trace:"http.method"`
	Status     int     `trace:"http.status_code"`
	Message    string  `trace:"response.message"`
	Code       int     `trace:"response.code"`
	DurationMs float64 `trace:"response.latency_ms"`
	Data       string  `trace:"response.data_preview"`
}

type TraceHttpServerMeta struct {
	// request side
	ClientAddr        string `trace:"client.address"`
	HttpRequestMethod string `trace:"http.request.method"`
	HttpRoute         string `trace:"http.route"`
	UrlPath           string `trace:"http.request.path"`
	UrlScheme         string `trace:"http.request.url.scheme"`
	UserAgent         string `trace:"user_agent.original"`
	ServerAddress     string `trace:"server.address"`
	NetworkPeerAddr   string `trace:"network.peer.address"`
	NetworkPeerPort   int    `trace:"network.peer.port"`
	NetworkProtoVer   string `trace:"network.protocol.version"`
	SpanKind          string `trace:"span.kind"`
	SpanTraceID       string `trace:"span.trace_id"`
	HttpStatusCode    int    `trace:"http.response.status_code"`
}

// 供 Redis 限流 Consume 使用
type TraceRateLimitMeta struct {
	ClientKey string `trace:"rl.client_key"`
	Scope     string `trace:"rl.scope"`
	Limit     int    `trace:"rl.limit_count"`
	WindowSec int64  `trace:"rl.window_sec"`
	Remaining int    `trace:"rl.remaining,omitempty"`
	TTL       int64  `trace:"rl.ttl_sec,omitempty"`
	Op        string `trace:"rl.op"` // "consume" / "reset"
}

// 供快取層 get/set/invalidate 使用
type TraceCacheMeta struct {
	Key     string  `trace:"cache.key"`
	Op      string  `trace:"cache.op"` // "get" / "set" / "delete" / "invalidate" / "clear"
	Hit     bool    `trace:"cache.hit,omitempty"`
	TTLSec  int     `trace:"cache.ttl_sec,omitempty"`
	Backend string  `trace:"cache.backend"` // "redis" / "memory"
	Error   *string `trace:"error,omitempty"`
}

// 供掛靠交換 ReplaceAssociations 使用
type TraceAssociationMeta struct {
	EmployeeID       string   `trace:"employment.employee_id"`
	IsFreelance      bool     `trace:"employment.is_freelance"`
	RequestedCount   int      `trace:"employment.requested_count"`
	DeactivatedCount int64    `trace:"employment.deactivated_count,omitempty"`
	InsertedCount    int      `trace:"employment.inserted_count,omitempty"`
	InvalidNames     []string `trace:"employment.invalid_establishments,omitempty"`
	Error            *string  `trace:"error,omitempty"`
}

// 供通知 fan-out 使用
type TraceNotifyMeta struct {
	Type           string  `trace:"notify.type"`
	RecipientCount int     `trace:"notify.recipient_count"`
	CreatedCount   int     `trace:"notify.created_count,omitempty"`
	Error          *string `trace:"error,omitempty"`
}

// 供列表查詢 handler 使用
type TraceListMeta struct {
	Page        int64          `trace:"list.page"`
	Size        int64          `trace:"list.size"`
	Filter      map[string]any `trace:"filter,omitempty"`
	ResultCount int            `trace:"result.count,omitempty"`
	CacheHit    bool           `trace:"cache.hit,omitempty"`
	Error       *string        `trace:"error,omitempty"`
}

// 供排程任務使用
type TraceCronMeta struct {
	Job        string  `trace:"cron.job"`
	FiredAt    string  `trace:"cron.fired_at"`
	ResetCount int64   `trace:"cron.reset_count,omitempty"`
	DurationMs float64 `trace:"cron.duration_ms,omitempty"`
	Error      *string `trace:"error,omitempty"`
}

type TraceRequestLogMeta struct {
	RequestID   string `trace:"http.request.request_id"`
	Path        string `trace:"http.request.path"`
	Method      string `trace:"http.request.method"`
	ProjectName string `trace:"project.name"`
	Body        string `trace:"http.request.body,omitempty"`
	IPHash      string `trace:"http.request.net.peer.ip_hash"`
	UserAgent   string `trace:"http.request.user_agent"`
	Version     string `trace:"log.version"`
	RequestTS   string `trace:"http.request_ts"`
	LoggedAt    string `trace:"http.logged_at"`
}
