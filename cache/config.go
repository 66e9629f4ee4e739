package cache

import "time"

// Config represents fetch cache configuration
type Config struct {
	// FreshnessWindow is how long a stored response is served without a network call.
	// A read at or beyond the window always fetches.
	FreshnessWindow time.Duration `yaml:"freshness_window"`

	// CoalesceRequests makes concurrent resolutions of the same stale key share one fetch
	CoalesceRequests bool `yaml:"coalesce_requests"`
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() Config {
	return Config{
		FreshnessWindow:  30 * time.Second,
		CoalesceRequests: true,
	}
}
