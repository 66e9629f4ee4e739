package core

import (
	"context"
	"time"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/metrics"
	"github.com/status-im/market-dashboard/scheduler"
)

// CacheStats is anything that reports fetch cache statistics
type CacheStats interface {
	Stats() cache.ServiceStats
}

// CacheReporter periodically exports the fetch cache size
type CacheReporter struct {
	stats     CacheStats
	interval  time.Duration
	writer    *metrics.MetricsWriter
	scheduler *scheduler.Scheduler
}

func NewCacheReporter(stats CacheStats, interval time.Duration) *CacheReporter {
	return &CacheReporter{
		stats:    stats,
		interval: interval,
		writer:   metrics.NewMetricsWriter(metrics.ServiceFetchCache),
	}
}

// Start implements Interface
func (r *CacheReporter) Start(ctx context.Context) error {
	if r.interval <= 0 {
		return nil
	}
	r.scheduler = scheduler.New(metrics.ServiceFetchCache, r.interval, func(ctx context.Context) {
		r.writer.RecordCacheSize(r.stats.Stats().Items)
	})
	r.scheduler.Start(ctx, true)
	return nil
}

// Stop implements Interface
func (r *CacheReporter) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
