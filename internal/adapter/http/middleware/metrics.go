package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being processed",
		},
	)
)

// Metrics middleware records HTTP metrics.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &metricsRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		duration := time.Since(start).Seconds()
		path := normalizePath(r.URL.Path)

		httpRequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(wrapped.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, path).Observe(duration)
	})
}

type metricsRecorder struct {
	http.ResponseWriter

	statusCode int
}

func (r *metricsRecorder) WriteHeader(code int) {
	r.statusCode = code
	r.ResponseWriter.WriteHeader(code)
}

const groupsPrefix = "/api/v1/groups/"

// normalizePath collapses group, member and expense ids so metric label
// cardinality stays bounded.
// /api/v1/groups/01ABC/expenses/01DEF -> /api/v1/groups/:id/expenses/:id
func normalizePath(path string) string {
	if !strings.HasPrefix(path, groupsPrefix) {
		return path
	}

	rest := strings.Split(path[len(groupsPrefix):], "/")
	if rest[0] == "join" {
		return path
	}

	for i, seg := range rest {
		if seg != "" && !fixedSegments[seg] {
			rest[i] = ":id"
		}
	}

	return groupsPrefix + strings.Join(rest, "/")
}

var fixedSegments = map[string]bool{
	"members":     true,
	"expenses":    true,
	"settlements": true,
	"balances":    true,
	"debts":       true,
	"analytics":   true,
	"consistency": true,
	"max":         true,
}
