package config

import (
	"fmt"
)

// ChartDay is one selectable range of the historical price chart
type ChartDay struct {
	Label string `yaml:"label" json:"label"`
	Value int    `yaml:"value" json:"value"`
}

// MarketChartConfig defines configuration for the coin page price chart
type MarketChartConfig struct {
	// DefaultDays is used when the view does not ask for a specific range
	DefaultDays int `yaml:"default_days"`
	// ChartDays lists the ranges the view offers as buttons
	ChartDays []ChartDay `yaml:"chart_days"`
}

// DefaultMarketChartConfig returns default configuration for the market chart
func DefaultMarketChartConfig() MarketChartConfig {
	return MarketChartConfig{
		DefaultDays: 1,
		ChartDays: []ChartDay{
			{Label: "24 Hours", Value: 1},
			{Label: "30 Days", Value: 30},
			{Label: "3 Months", Value: 90},
			{Label: "1 Year", Value: 365},
		},
	}
}

func (c *MarketChartConfig) Validate() error {
	if c.DefaultDays <= 0 {
		return fmt.Errorf("default_days must be greater than 0, got %d", c.DefaultDays)
	}
	for i, day := range c.ChartDays {
		if day.Label == "" {
			return fmt.Errorf("chart day at index %d: label cannot be empty", i)
		}
		if day.Value <= 0 {
			return fmt.Errorf("chart day '%s': value must be greater than 0", day.Label)
		}
	}
	return nil
}
