package metrics

import (
	"log"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// FetchDurationHistogram tracks the duration of upstream fetches made by the fetch cache
	FetchDurationHistogram = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: MetricsPrefix + "fetch_duration_seconds",
			Help: "Time taken to fetch data from external APIs",
		},
		[]string{"operation"},
	)
)

// RecordFetchDuration records how long one upstream fetch took
func RecordFetchDuration(duration time.Duration) {
	FetchDurationHistogram.WithLabelValues("fetch").Observe(duration.Seconds())
}

// RecordRefreshCycle measures and records the duration of a background refresh cycle
func RecordRefreshCycle(service string, start time.Time) {
	duration := time.Since(start)
	FetchDurationHistogram.WithLabelValues(service + "_refresh").Observe(duration.Seconds())
	log.Printf("Metrics: %s refresh took %.2fs", service, duration.Seconds())
}
