package prometheus

import (
	"time"

	"inventory-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   prometheus.CounterVec
	HttpRequestDuration prometheus.HistogramVec

	// Database operation metrics
	DbOperationDuration prometheus.HistogramVec

	// Tenant context metrics
	TenantContextMissingCounter prometheus.Counter

	// Domain operation counters
	TenantOperationsCounter      prometheus.CounterVec
	MaterialOperationsCounter    prometheus.CounterVec
	TransactionOperationsCounter prometheus.CounterVec

	// Rejection counters for the two invariant-bearing checks
	QuotaExceededCounter     prometheus.Counter
	InsufficientStockCounter prometheus.Counter
)

// InitMetrics initializes Prometheus metrics with configuration
func InitMetrics(config *config.Config) {
	prefix := config.Metrics.Prefix

	HttpRequestsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	DbOperationDuration = *promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation_type"},
	)

	TenantContextMissingCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_context_missing_total",
			Help: "Total number of requests without tenant context",
		},
	)

	TenantOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_tenant_operations_total",
			Help: "Total number of tenant operations",
		},
		[]string{"operation"},
	)

	MaterialOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_material_operations_total",
			Help: "Total number of material operations",
		},
		[]string{"operation"},
	)

	TransactionOperationsCounter = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_transaction_operations_total",
			Help: "Total number of stock transaction operations",
		},
		[]string{"operation"},
	)

	QuotaExceededCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_quota_exceeded_total",
			Help: "Total number of material creations rejected by the plan quota",
		},
	)

	InsufficientStockCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_insufficient_stock_total",
			Help: "Total number of OUT transactions rejected for insufficient stock",
		},
	)
}

// TrackDBOperation returns a function that records the duration of a database operation
func TrackDBOperation(operationType string) func(startTime time.Time) {
	return func(startTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DbOperationDuration.WithLabelValues(operationType).Observe(duration)
	}
}

// RecordTenantOperation increments the counter for tenant operations
func RecordTenantOperation(operation string) {
	TenantOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordMaterialOperation increments the counter for material operations
func RecordMaterialOperation(operation string) {
	MaterialOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTransactionOperation increments the counter for transaction operations
func RecordTransactionOperation(operation string) {
	TransactionOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordQuotaExceeded increments the quota rejection counter
func RecordQuotaExceeded() {
	QuotaExceededCounter.Inc()
}

// RecordInsufficientStock increments the insufficient stock rejection counter
func RecordInsufficientStock() {
	InsufficientStockCounter.Inc()
}
