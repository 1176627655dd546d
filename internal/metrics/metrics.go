// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	httpRequests    *prometheus.CounterVec
	requestDuration prometheus.Histogram
	tokensIssued    prometheus.Counter
	tokensRejected  *prometheus.CounterVec
	storeOps        *prometheus.CounterVec
	storeFailures   *prometheus.CounterVec
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_http_requests_total",
			Help: "メソッド・ステータスコード別のHTTPリクエスト数",
		}, []string{"method", "status_code"}),
		requestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "blogman_http_request_duration_seconds",
			Help:    "HTTPリクエスト処理のレイテンシ（秒）",
			Buckets: prometheus.DefBuckets,
		}),
		tokensIssued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "blogman_tokens_issued_total",
			Help: "発行されたトークンの合計数",
		}),
		tokensRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_tokens_rejected_total",
			Help: "拒否されたトークンの理由別合計数",
		}, []string{"reason"}),
		storeOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_store_operations_total",
			Help: "コレクション・操作別のドキュメントストア操作数",
		}, []string{"collection", "operation"}),
		storeFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "blogman_store_failures_total",
			Help: "コレクション別のドキュメントストア操作失敗数",
		}, []string{"collection"}),
	}

	reg.MustRegister(
		c.httpRequests,
		c.requestDuration,
		c.tokensIssued,
		c.tokensRejected,
		c.storeOps,
		c.storeFailures,
	)

	return c
}

// RecordHTTPRequest はHTTPリクエストの結果を記録する。
func (c *Collector) RecordHTTPRequest(method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
	c.requestDuration.Observe(duration.Seconds())
}

// RecordTokenIssued はトークン発行を記録する。
func (c *Collector) RecordTokenIssued() {
	c.tokensIssued.Inc()
}

// RecordTokenRejected はトークン拒否を理由付きで記録する。
func (c *Collector) RecordTokenRejected(reason string) {
	c.tokensRejected.WithLabelValues(reason).Inc()
}

// RecordStoreOperation はドキュメントストア操作を記録する。
func (c *Collector) RecordStoreOperation(collection, operation string) {
	c.storeOps.WithLabelValues(collection, operation).Inc()
}

// RecordStoreFailure はドキュメントストア操作の失敗を記録する。
func (c *Collector) RecordStoreFailure(collection string) {
	c.storeFailures.WithLabelValues(collection).Inc()
}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
