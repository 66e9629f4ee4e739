package config

import (
	"fmt"
	"strings"
)

// DashboardConfig holds the view-facing defaults of the coin table and ticker
type DashboardConfig struct {
	DefaultCurrency string   `yaml:"default_currency"`
	Currencies      []string `yaml:"currencies"`
	// PageSize is the number of table rows on a regular layout
	PageSize int `yaml:"page_size"`
	// CompactPageSize is used when the view asks for a compact (mobile) layout
	CompactPageSize int `yaml:"compact_page_size"`
	// ListPerPage is how many coins the markets request asks CoinGecko for
	ListPerPage int `yaml:"list_per_page"`
	// TrendingPerPage is the size of the trending ticker
	TrendingPerPage int `yaml:"trending_per_page"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		DefaultCurrency: "inr",
		Currencies:      []string{"inr", "usd"},
		PageSize:        10,
		CompactPageSize: 5,
		ListPerPage:     250,
		TrendingPerPage: 10,
	}
}

// SupportsCurrency reports whether currency is one of the configured currencies
func (c DashboardConfig) SupportsCurrency(currency string) bool {
	currency = strings.ToLower(strings.TrimSpace(currency))
	for _, cur := range c.Currencies {
		if cur == currency {
			return true
		}
	}
	return false
}

func (c *DashboardConfig) normalize() {
	c.DefaultCurrency = strings.ToLower(strings.TrimSpace(c.DefaultCurrency))
	for i, cur := range c.Currencies {
		c.Currencies[i] = strings.ToLower(strings.TrimSpace(cur))
	}
}

func (c *DashboardConfig) Validate() error {
	if len(c.Currencies) == 0 {
		return fmt.Errorf("at least one currency must be configured")
	}
	if !c.SupportsCurrency(c.DefaultCurrency) {
		return fmt.Errorf("default_currency '%s' is not in currencies %v", c.DefaultCurrency, c.Currencies)
	}
	if c.PageSize <= 0 || c.CompactPageSize <= 0 {
		return fmt.Errorf("page sizes must be greater than 0")
	}
	if c.ListPerPage <= 0 || c.ListPerPage > 250 {
		return fmt.Errorf("list_per_page must be within [1, 250], got %d", c.ListPerPage)
	}
	if c.TrendingPerPage <= 0 || c.TrendingPerPage > 250 {
		return fmt.Errorf("trending_per_page must be within [1, 250], got %d", c.TrendingPerPage)
	}
	return nil
}
