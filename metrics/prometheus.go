package metrics

import (
	"log"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsPrefix is the prefix used for all metrics
const MetricsPrefix = "market_dashboard_"

// Service constants
const (
	ServiceMarkets     = "markets"
	ServiceTrending    = "trending"
	ServiceCoins       = "coins"
	ServiceMarketChart = "market_chart"
	ServiceFetcher     = "fetcher"
	ServiceFetchCache  = "fetch_cache"
)

var (
	// Global Coingecko request counter (all services)
	// Cardinality: ~3 (success, error, rate_limited)
	CoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API across all services",
		},
		[]string{"status"},
	)

	// Service-specific Coingecko request counter
	ServiceCoingeckoRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_coingecko_requests_total",
			Help: "Total number of HTTP requests to Coingecko API per service",
		},
		[]string{"service", "status"},
	)

	// Fetch cache lookups by outcome (hit, miss)
	FetchCacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fetch_cache_lookups_total",
			Help: "Fetch cache resolutions by outcome",
		},
		[]string{"status"},
	)

	// Fetch cache failures by error kind
	FetchCacheFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "fetch_cache_failures_total",
			Help: "Failed fetches by error classification",
		},
		[]string{"kind"},
	)

	// Service cache size
	ServiceCacheSizeGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: MetricsPrefix + "service_cache_size",
			Help: "Number of items in service cache",
		},
		[]string{"service"},
	)

	// Retry attempts counter
	ServiceRetryCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "service_retry_attempts_total",
			Help: "Total number of retry attempts per service",
		},
		[]string{"service"},
	)

	// Rate limit hits counter
	RateLimitCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "rate_limit_hits_total",
			Help: "Total number of rate limit hits per service",
		},
		[]string{"service"},
	)

	// API responses served to the view layer
	// Cardinality: routes × status codes
	APIResponsesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricsPrefix + "api_responses_total",
			Help: "Responses served by the dashboard API",
		},
		[]string{"route", "code"},
	)
)

// RecordFetchCacheLookup records one fetch cache resolution outcome
func RecordFetchCacheLookup(status string) {
	FetchCacheLookupsTotal.WithLabelValues(status).Inc()
}

// RecordFetchCacheFailure records a failed fetch by its classification
func RecordFetchCacheFailure(kind string) {
	FetchCacheFailuresTotal.WithLabelValues(kind).Inc()
}

// RecordAPIResponse records a response served by the API
func RecordAPIResponse(route string, code int) {
	APIResponsesTotal.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// MetricsWriter provides a unified interface for recording service metrics
type MetricsWriter struct {
	serviceName string
}

// NewMetricsWriter creates a new MetricsWriter for the specified service
func NewMetricsWriter(serviceName string) *MetricsWriter {
	return &MetricsWriter{
		serviceName: serviceName,
	}
}

// GetServiceName returns the service name
func (mw *MetricsWriter) GetServiceName() string {
	return mw.serviceName
}

// RecordServiceCoingeckoRequest records a service-specific Coingecko API request
func (mw *MetricsWriter) RecordServiceCoingeckoRequest(status string) {
	CoingeckoRequestsTotal.WithLabelValues(status).Inc()
	ServiceCoingeckoRequestsTotal.WithLabelValues(mw.serviceName, status).Inc()
	if status == "rate_limited" {
		RateLimitCounter.WithLabelValues(mw.serviceName).Inc()
	}
}

// RecordCacheSize records the number of items in service cache
func (mw *MetricsWriter) RecordCacheSize(size int) {
	ServiceCacheSizeGauge.WithLabelValues(mw.serviceName).Set(float64(size))
	log.Printf("Metrics: %s cache size is %d items", mw.serviceName, size)
}

// RecordRetryAttempt records a retry attempt
func (mw *MetricsWriter) RecordRetryAttempt() {
	ServiceRetryCounter.WithLabelValues(mw.serviceName).Inc()
	log.Printf("Metrics: %s recorded a retry attempt", mw.serviceName)
}

// Implement IHttpStatusHandler interface for MetricsWriter
// OnRequest records an HTTP request with its status
func (mw *MetricsWriter) OnRequest(status string) {
	mw.RecordServiceCoingeckoRequest(status)
}

// OnRetry records an HTTP retry attempt
func (mw *MetricsWriter) OnRetry() {
	mw.RecordRetryAttempt()
}
