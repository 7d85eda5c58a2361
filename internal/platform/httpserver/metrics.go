package httpserver

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests by method, resource and status.",
	}, []string{"method", "resource", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method and resource.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "resource"})
)

// Metrics records request counts and latencies. The resource label is the
// first path segment, not the full path, to keep cardinality bounded.
func Metrics() MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusRecorder{ResponseWriter: w}

			next.ServeHTTP(recorder, r)

			status := recorder.status
			if status == 0 {
				status = http.StatusOK
			}
			resource := resourceLabel(r.URL.Path)
			requestsTotal.WithLabelValues(r.Method, resource, strconv.Itoa(status)).Inc()
			requestDuration.WithLabelValues(r.Method, resource).Observe(time.Since(start).Seconds())
		})
	}
}

func resourceLabel(path string) string {
	path = strings.TrimPrefix(path, "/")
	if segment, _, ok := strings.Cut(path, "/"); ok && segment != "" {
		return "/" + segment
	}
	if path == "" {
		return "/"
	}
	return "/" + path
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
