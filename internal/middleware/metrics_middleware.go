package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"jrs-backend/internal/metrics"
)

// MetricsMiddleware records request count and latency per route. The path
// label is normalized first: job ids, user ids and charge ids would
// otherwise fan out into one Prometheus series per entity.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rec, r)

		path := metricPath(r.URL.Path)
		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(rec.statusCode)).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(
			r.Method, path).Observe(time.Since(start).Seconds())
	})
}

// metricPath collapses id-shaped path segments (JRS job ids, numeric row
// ids, uuid charge ids) into a {id} placeholder.
func metricPath(p string) string {
	parts := strings.Split(p, "/")
	for i, seg := range parts {
		if seg == "" {
			continue
		}
		if strings.HasPrefix(seg, "JRS-") {
			parts[i] = "{id}"
			continue
		}
		if _, err := strconv.Atoi(seg); err == nil {
			parts[i] = "{id}"
			continue
		}
		if len(seg) == 36 && strings.Count(seg, "-") == 4 {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (r *statusRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
