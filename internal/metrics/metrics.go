// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_api_active_requests",
			Help: "Number of API requests currently being served",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_db_query_duration_seconds",
			Help:    "Duration of catalog database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_db_query_errors_total",
			Help: "Total number of failed catalog database queries",
		},
		[]string{"operation"},
	)

	CatalogPageSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_page_rows",
			Help:    "Number of movies returned per catalog page",
			Buckets: []float64{0, 1, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	TMDBRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_tmdb_requests_total",
			Help: "Total number of TMDB API requests by endpoint and outcome",
		},
		[]string{"endpoint", "outcome"},
	)

	TMDBCircuitOpen = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_tmdb_circuit_open",
			Help: "1 when the TMDB circuit breaker is open, 0 otherwise",
		},
	)

	JobRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_job_records_total",
			Help: "Records handled by offline catalog jobs by outcome",
		},
		[]string{"job", "outcome"},
	)
)

func RecordAPIRequest(method, route, status string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, status).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordDBQuery observes a query that started at start. Call it deferred with the
// named error result of the surrounding function.
func RecordDBQuery(operation string, start time.Time, err error) {
	DBQueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation).Inc()
	}
}

func RecordTMDBRequest(endpoint, outcome string) {
	TMDBRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
}

func SetTMDBCircuitOpen(open bool) {
	if open {
		TMDBCircuitOpen.Set(1)
	} else {
		TMDBCircuitOpen.Set(0)
	}
}

func RecordJobRecord(job, outcome string) {
	JobRecordsTotal.WithLabelValues(job, outcome).Inc()
}
