package binanceapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var latencyMetrics = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "binance_margin_api_latency_ms",
		Help:    "The histogram of latency returned by binance margin API",
		Buckets: prometheus.ExponentialBuckets(20, 2, 9), // 20ms to 5120ms
	},
	[]string{"path", "method", "status_code"},
)

// recordLatencyMetrics records the request latency, statusCode 0 means the request did not get a response
func recordLatencyMetrics(req *http.Request, statusCode int, latency time.Duration) {
	latencyMetrics.With(prometheus.Labels{
		"path":        req.URL.Path,
		"method":      req.Method,
		"status_code": strconv.Itoa(statusCode),
	}).Observe(float64(latency.Milliseconds()))
}
