package coingecko_market_chart

import (
	"errors"
	"strings"
)

// MarketChartParams represents parameters for market chart requests
type MarketChartParams struct {
	// ID is the coin id (required)
	ID string `json:"id"`

	// Currency to compare against (e.g., "inr", "usd")
	Currency string `json:"vs_currency"`

	// Days specifies the data up to number of days ago. CoinGecko picks the
	// granularity: 1 day = 5-minutely, 2-90 days = hourly, above = daily
	Days int `json:"days"`
}

// Normalized trims and lower-cases the id and currency
func (p MarketChartParams) Normalized() MarketChartParams {
	p.ID = strings.ToLower(strings.TrimSpace(p.ID))
	p.Currency = strings.ToLower(strings.TrimSpace(p.Currency))
	return p
}

// Validate validates the MarketChartParams
func (p *MarketChartParams) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("coin ID is required")
	}
	if strings.TrimSpace(p.Currency) == "" {
		return errors.New("currency is required")
	}
	if p.Days < 1 {
		return errors.New("invalid days parameter, must be at least 1")
	}
	return nil
}

// MarketChartData represents a single data point [timestamp ms, value]
type MarketChartData [2]float64

// MarketChartResponse represents the market chart API response structure
type MarketChartResponse struct {
	// Prices contains historical price data as [timestamp, price] pairs
	Prices []MarketChartData `json:"prices"`

	// MarketCaps contains historical market cap data as [timestamp, market_cap] pairs
	MarketCaps []MarketChartData `json:"market_caps"`

	// TotalVolumes contains historical volume data as [timestamp, total_volume] pairs
	TotalVolumes []MarketChartData `json:"total_volumes"`
}

// ChartSeries is a price line ready to be drawn: one label per value
type ChartSeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
	Label  string    `json:"label"`
	Days   int       `json:"days"`
}
