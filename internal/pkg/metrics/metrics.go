package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launa_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "launa_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	recordWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launa_record_writes_total",
		Help: "Sale and shift writes by collection, operation and result",
	}, []string{"collection", "operation", "result"})

	storeDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "launa_store_call_duration_seconds",
		Help:    "Duration of record store calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "operation"})

	cacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "launa_cache_lookups_total",
		Help: "Read cache lookups by result",
	}, []string{"result"})

	reconciledShifts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "launa_reconciled_shifts_total",
		Help: "Shifts whose derived pay fields were rewritten by the reconciliation job",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveWrite counts a sale or shift write. result is "ok" or "error".
func ObserveWrite(collection, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	recordWrites.WithLabelValues(collection, operation, result).Inc()
}

// ObserveStoreCall records how long a store round-trip took.
func ObserveStoreCall(backend, operation string, start time.Time) {
	storeDuration.WithLabelValues(backend, operation).Observe(time.Since(start).Seconds())
}

// ObserveCacheLookup counts a read cache hit or miss.
func ObserveCacheLookup(hit bool) {
	if hit {
		cacheLookups.WithLabelValues("hit").Inc()
		return
	}
	cacheLookups.WithLabelValues("miss").Inc()
}

// AddReconciled adds n rewritten shifts to the reconciliation counter.
func AddReconciled(n int) {
	if n > 0 {
		reconciledShifts.Add(float64(n))
	}
}
