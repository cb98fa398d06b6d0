package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jrs_http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "jrs_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	JobsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "jrs_jobs_created_total",
		Help: "Jobs created, labelled by initial status",
	}, []string{"status"})

	RepricingRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jrs_repricing_runs_total",
		Help: "Full re-scans performed by the auto-repricing reactor",
	})

	RepricingPromotionsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jrs_repricing_promotions_total",
		Help: "Jobs promoted out of Pending Pricing by the reactor",
	})

	AuditEntriesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "jrs_audit_entries_total",
		Help: "Audit log entries appended",
	})
)
