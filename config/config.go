package config

import (
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/status-im/market-dashboard/cache"
)

type Config struct {
	FetchCache  cache.Config      `yaml:"fetch_cache"`
	Coingecko   CoingeckoFetcher  `yaml:"coingecko"`
	Dashboard   DashboardConfig   `yaml:"dashboard"`
	MarketChart MarketChartConfig `yaml:"market_chart"`
	Ticker      TickerConfig      `yaml:"ticker"`
	TokensFile  string            `yaml:"tokens_file"`
	Port        string            `yaml:"port"`
	APITokens   *APITokens        `yaml:"-"`

	OverrideCoingeckoPublicURL string `yaml:"override_coingecko_public_url"`
	OverrideCoingeckoProURL    string `yaml:"override_coingecko_pro_url"`
}

// Default returns a configuration with every section set to its default
func Default() *Config {
	return &Config{
		FetchCache:  cache.DefaultCacheConfig(),
		Coingecko:   DefaultCoingeckoFetcher(),
		Dashboard:   DefaultDashboardConfig(),
		MarketChart: DefaultMarketChartConfig(),
		Ticker:      DefaultTickerConfig(),
		TokensFile:  "coingecko_api_tokens.json",
		Port:        "8080",
		APITokens:   &APITokens{Tokens: []string{}},
	}
}

// LoadConfig reads the YAML file on top of the defaults, applies environment
// overrides and validates the result
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if err := config.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	apiTokens, err := LoadAPITokens(config.TokensFile)
	if err != nil {
		log.Printf("Warning: Error loading API tokens from %s: %v. Using public API without authentication.",
			config.TokensFile, err)
		apiTokens = &APITokens{Tokens: []string{}}
	}
	config.APITokens = apiTokens.Merge(config.APITokens)

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Parse decodes YAML data on top of Default()
func Parse(data []byte) (*Config, error) {
	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, err
	}
	config.Dashboard.normalize()
	return config, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if c.FetchCache.FreshnessWindow <= 0 {
		return fmt.Errorf("fetch_cache.freshness_window must be greater than 0")
	}
	if err := c.Coingecko.Validate(); err != nil {
		return fmt.Errorf("coingecko: %w", err)
	}
	if err := c.Dashboard.Validate(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	if err := c.MarketChart.Validate(); err != nil {
		return fmt.Errorf("market_chart: %w", err)
	}
	if c.Ticker.Enabled && c.Ticker.UpdateInterval <= 0 {
		return fmt.Errorf("ticker: update_interval must be greater than 0")
	}
	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("port cannot be empty")
	}
	return nil
}
