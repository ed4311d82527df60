package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Route patterns (not raw URLs) are used as the path label so that every QID
// lands in the same series.
var (
	httpReqs = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "depicts",
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code.",
		},
		[]string{"method", "path", "status"},
	)

	httpLat = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "depicts",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	httpInflight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "depicts",
			Name:      "http_requests_inflight",
			Help:      "Requests currently being served.",
		},
	)

	httpRespSize = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "depicts",
			Name:      "http_response_size_bytes",
			Help:      "Response body size by method and route.",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8), // 256B .. 4MiB
		},
		[]string{"method", "path"},
	)

	// editsRecorded counts edit submissions by outcome so operators can see
	// how many suggestions volunteers actually saved.
	editsRecorded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "depicts",
			Name:      "edit_submissions_total",
			Help:      "POST /edits submissions by outcome (created, duplicate, rejected).",
		},
		[]string{"outcome"},
	)
)

func init() {
	prometheus.MustRegister(httpReqs, httpLat, httpInflight, httpRespSize, editsRecorded)
}

// Metrics records request count, latency, in-flight gauge and response size.
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		httpInflight.Inc()
		defer httpInflight.Dec()

		c.Next()

		method, path := c.Request.Method, routeOf(c)
		httpReqs.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpLat.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
		// Size is -1 when nothing was written.
		if size := c.Writer.Size(); size >= 0 {
			httpRespSize.WithLabelValues(method, path).Observe(float64(size))
		}
	}
}

// ObserveEdit counts one edit submission. Handlers call it with "created",
// "duplicate" or "rejected".
func ObserveEdit(outcome string) {
	editsRecorded.WithLabelValues(outcome).Inc()
}
