package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// cache lookup outcomes
const (
	CacheHit     = "hit"
	CacheMiss    = "miss"
	CacheError   = "error"
	CacheCorrupt = "corrupt"
	CacheForeign = "owner_mismatch"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playground_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	cacheLookupsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_session_cache_lookups_total",
			Help: "Session cache lookups by outcome",
		},
		[]string{"result"},
	)

	cacheWriteFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "playground_session_cache_write_failures_total",
			Help: "Session cache writes that failed after a successful store write",
		},
	)

	rateLimitBypassesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "playground_rate_limit_bypasses_total",
			Help: "Requests let through because the rate limit store was unreachable",
		},
	)

	generationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "playground_generations_total",
			Help: "Component generations by outcome",
		},
		[]string{"status"},
	)

	generationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "playground_generation_duration_seconds",
			Help:    "Upstream generation latency in seconds",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"model"},
	)

	initOnce sync.Once
)

// registers all collectors with the default registry
func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(
			httpRequestsTotal,
			httpRequestDuration,
			cacheLookupsTotal,
			cacheWriteFailuresTotal,
			rateLimitBypassesTotal,
			generationsTotal,
			generationDuration,
		)
	})
}

// serves the Prometheus exposition format
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// records request count and latency keyed by route template
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}

		httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func RecordCacheLookup(result string) {
	cacheLookupsTotal.WithLabelValues(result).Inc()
}

func RecordCacheWriteFailure() {
	cacheWriteFailuresTotal.Inc()
}

func RecordRateLimitBypass() {
	rateLimitBypassesTotal.Inc()
}

func RecordGeneration(model, status string, elapsed time.Duration) {
	generationsTotal.WithLabelValues(status).Inc()
	generationDuration.WithLabelValues(model).Observe(elapsed.Seconds())
}
