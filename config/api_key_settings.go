package config

import "fmt"

// APIKeyConfig configures rate limiting per CoinGecko key type
type APIKeyConfig struct {
	// Requests per minute and burst per type. If zero, defaults are used.
	Pro   RateLimit `yaml:"pro"`
	Demo  RateLimit `yaml:"demo"`
	NoKey RateLimit `yaml:"nokey"`
}

// RateLimit represents a simple rpm + burst pair
type RateLimit struct {
	RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	Burst              int `yaml:"burst"`
}

func (c APIKeyConfig) Validate() error {
	for name, rl := range map[string]RateLimit{"pro": c.Pro, "demo": c.Demo, "nokey": c.NoKey} {
		if rl.RateLimitPerMinute < 0 || rl.Burst < 0 {
			return fmt.Errorf("api_keys.%s: rate limit values cannot be negative", name)
		}
	}
	return nil
}
