package config

import "time"

// TickerConfig configures the background refresh of the trending ticker
type TickerConfig struct {
	Enabled        bool          `yaml:"enabled"`
	UpdateInterval time.Duration `yaml:"update_interval"`
	// CacheReportInterval is how often the fetch cache size is exported to metrics
	CacheReportInterval time.Duration `yaml:"cache_report_interval"`
}

func DefaultTickerConfig() TickerConfig {
	return TickerConfig{
		Enabled:             true,
		UpdateInterval:      30 * time.Second,
		CacheReportInterval: time.Minute,
	}
}
