package observability

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusHooks records pipeline, cache and HTTP events as Prometheus
// metrics. It implements PipelineHooks, CacheHooks and HTTPHooks.
type PrometheusHooks struct {
	stage    *prometheus.HistogramVec
	failures *prometheus.CounterVec
	rows     *prometheus.HistogramVec
	cache    *prometheus.CounterVec
	bytes    *prometheus.CounterVec
	requests *prometheus.HistogramVec
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg prometheus.Registerer) *PrometheusHooks {
	h := &PrometheusHooks{
		stage: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chartistry",
			Name:      "stage_duration_seconds",
			Help:      "Duration of pipeline stages.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"stage"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartistry",
			Name:      "stage_failures_total",
			Help:      "Pipeline stages that returned an error.",
		}, []string{"stage"}),
		rows: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chartistry",
			Name:      "source_rows",
			Help:      "Rows returned by data sources.",
			Buckets:   prometheus.ExponentialBuckets(1, 10, 7),
		}, []string{"kind"}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartistry",
			Name:      "cache_lookups_total",
			Help:      "Cache lookups by key type and result.",
		}, []string{"key_type", "result"}),
		bytes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartistry",
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}, []string{"key_type"}),
		requests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chartistry",
			Name:      "source_http_request_duration_seconds",
			Help:      "Outgoing HTTP requests made by data sources.",
		}, []string{"host", "code"}),
	}
	reg.MustRegister(h.stage, h.failures, h.rows, h.cache, h.bytes, h.requests)
	return h
}

func (h *PrometheusHooks) observe(stage string, d time.Duration, err error) {
	h.stage.WithLabelValues(stage).Observe(d.Seconds())
	if err != nil {
		h.failures.WithLabelValues(stage).Inc()
	}
}

func (h *PrometheusHooks) OnLoadStart(context.Context, string, string) {}

func (h *PrometheusHooks) OnLoadComplete(_ context.Context, kind, _ string, rows int, d time.Duration, err error) {
	h.observe("load", d, err)
	if err == nil {
		h.rows.WithLabelValues(kind).Observe(float64(rows))
	}
}

func (h *PrometheusHooks) OnLayoutStart(context.Context, string, float64, float64) {}

func (h *PrometheusHooks) OnLayoutComplete(_ context.Context, _ string, d time.Duration, err error) {
	h.observe("layout", d, err)
}

func (h *PrometheusHooks) OnRenderStart(context.Context, []string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	h.observe("render", d, err)
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cache.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cache.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.bytes.WithLabelValues(keyType).Add(float64(size))
}

func (h *PrometheusHooks) OnRequest(context.Context, string, string, string) {}

func (h *PrometheusHooks) OnResponse(_ context.Context, _, host, _ string, code int, d time.Duration) {
	h.requests.WithLabelValues(host, strconv.Itoa(code)).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnError(_ context.Context, _, host, _ string, _ error) {
	h.requests.WithLabelValues(host, "error").Observe(0)
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ HTTPHooks     = (*PrometheusHooks)(nil)
)
