package config

import (
	"fmt"
	"time"
)

// CoingeckoFetcher configures the HTTP client used to reach CoinGecko
type CoingeckoFetcher struct {
	ConnectionTimeout time.Duration `yaml:"connection_timeout"` // Timeout for establishing connection
	RequestTimeout    time.Duration `yaml:"request_timeout"`    // Total request timeout including reading response
	MaxRetries        int           `yaml:"max_retries"`        // Attempts for transport errors and 5xx; 429 is never retried
	BaseBackoff       time.Duration `yaml:"base_backoff"`
	KeyBackoff        time.Duration `yaml:"key_backoff"` // How long a failed API key is skipped
	UserAgent         string        `yaml:"user_agent"`
	APIKeys           APIKeyConfig  `yaml:"api_keys"`
}

func DefaultCoingeckoFetcher() CoingeckoFetcher {
	return CoingeckoFetcher{
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
		MaxRetries:        2,
		BaseBackoff:       500 * time.Millisecond,
		KeyBackoff:        5 * time.Minute,
		UserAgent:         "Mozilla/5.0 Market-Dashboard",
	}
}

func (c *CoingeckoFetcher) Validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RequestTimeout < 0 || c.ConnectionTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	if c.BaseBackoff < 0 {
		return fmt.Errorf("base_backoff cannot be negative")
	}
	return c.APIKeys.Validate()
}
