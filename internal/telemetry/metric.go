package telemetry

import (
	"pattamap/config"
	"pattamap/internal/core"

	"github.com/google/wire"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ProviderSet = wire.NewSet(NewTrace, NewMetric)

// Metric struct
type Metric struct {
	HttpRequestsTotal      *prometheus.CounterVec
	HttpRequestDuration    *prometheus.HistogramVec
	CacheHitTotal          *prometheus.CounterVec
	CacheMissTotal         *prometheus.CounterVec
	NotificationSentTotal  *prometheus.CounterVec
	PushFailTotal          *prometheus.CounterVec
	CronRunTotal           *prometheus.CounterVec
	RateLimitTotal         *prometheus.CounterVec
	AssociationSwapTotal   *prometheus.CounterVec
	AssociationRejectTotal *prometheus.CounterVec
	config                 *config.Configuration
}

// NewMetric 建立所有指標
func NewMetric(config *config.Configuration) *Metric {
	if config == nil || !config.Telemetry.Metric.Enabled {
		return &Metric{}
	}
	buckets := prometheus.DefBuckets
	if len(config.Telemetry.Metric.Buckets) > 0 {
		buckets = config.Telemetry.Metric.Buckets
	}
	return &Metric{
		config: config,
		HttpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricHttpRequestsTotal),
				Help: "Total received API requests",
			},
			labelNames(core.MetricLabelEndpoint, core.MetricLabelStatus),
		),
		HttpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    config.App.Name + "_" + string(core.MetricHttpRequestDuration),
				Help:    "Request duration (seconds)",
				Buckets: buckets,
			},
			labelNames(core.MetricLabelEndpoint),
		),
		CacheHitTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricCacheHitTotal),
				Help: "Cache store hit count",
			},
			labelNames(core.MetricLabelKeyspace),
		),
		CacheMissTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricCacheMissTotal),
				Help: "Cache store miss count (failures count as misses)",
			},
			labelNames(core.MetricLabelKeyspace),
		),
		NotificationSentTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricNotificationSentTotal),
				Help: "Notification records created",
			},
			labelNames(core.MetricLabelType),
		),
		PushFailTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricPushFailTotal),
				Help: "Best-effort push deliveries that failed",
			},
			labelNames(core.MetricLabelReason),
		),
		CronRunTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricCronRunTotal),
				Help: "Scheduled job runs",
			},
			labelNames(core.MetricLabelJob, core.MetricLabelStatus),
		),
		RateLimitTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricRateLimitTotal),
				Help: "Requests rejected by rate limiting",
			},
			labelNames(core.MetricLabelEndpoint),
		),
		AssociationSwapTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricAssociationSwapTotal),
				Help: "Employment association swaps",
			},
			labelNames(core.MetricLabelStatus),
		),
		AssociationRejectTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: config.App.Name + "_" + string(core.MetricAssociationRejectTotal),
				Help: "Employment association requests rejected by validation",
			},
			labelNames(core.MetricLabelReason),
		),
	}
}

// labelNames helper: LabelName slice 轉成 []string
func labelNames(labels ...core.MetricLabelName) []string {
	strs := make([]string, len(labels))
	for i, l := range labels {
		strs[i] = string(l)
	}
	return strs
}
