package router

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/amasdatadriven/backend/pkg/models"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// URLMiddleware stores the public base URL of the API in the context.
// Controllers build the links of tasks, lines and transactions from it.
func URLMiddleware(url *url.URL) gin.HandlerFunc {
	base := url.String()

	return func(c *gin.Context) {
		c.Set(string(models.DBContextURL), base)
		c.Next()
	}
}

var (
	requestCount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "amas",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests handled, by status code, method and route.",
		},
		[]string{"code", "method", "route"},
	)

	requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "amas",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Time taken to answer HTTP requests, by status code, method and route.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"code", "method", "route"},
	)

	collectors = []prometheus.Collector{requestCount, requestDuration}
)

func registerPrometheusMetrics() error {
	for _, c := range collectors {
		if err := prometheus.Register(c); err != nil {
			return fmt.Errorf("could not register %s with Prometheus: %w", c, err)
		}
	}

	return nil
}

// unregisterPrometheusMetrics is called on router teardown so that the
// next router can register the collectors again.
func unregisterPrometheusMetrics() bool {
	for _, c := range collectors {
		if !prometheus.Unregister(c) {
			return false
		}
	}

	return true
}

// MetricsMiddleware records count and latency of every request.
//
// Requests are labelled with the matched route, e.g. /v1/tasks/:id/lines,
// so that task and line IDs do not create new series.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		code := strconv.Itoa(c.Writer.Status())
		requestDuration.WithLabelValues(code, c.Request.Method, route).Observe(time.Since(start).Seconds())
		requestCount.WithLabelValues(code, c.Request.Method, route).Inc()
	}
}
