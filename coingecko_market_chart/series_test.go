package coingecko_market_chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func ms(t time.Time) float64 {
	return float64(t.UnixMilli())
}

func TestFormatLabel_OneDay(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want string
	}{
		{"afternoon", time.Date(2024, 3, 1, 15, 7, 0, 0, time.UTC), "3:7 PM"},
		{"morning", time.Date(2024, 3, 1, 9, 45, 0, 0, time.UTC), "9:45 AM"},
		{"noon stays AM", time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC), "12:30 AM"},
		{"midnight", time.Date(2024, 3, 1, 0, 5, 0, 0, time.UTC), "0:5 AM"},
		{"late evening", time.Date(2024, 3, 1, 23, 59, 0, 0, time.UTC), "11:59 PM"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLabel(tt.at.UnixMilli(), 1, time.UTC))
		})
	}
}

func TestFormatLabel_Dates(t *testing.T) {
	at := time.Date(2024, 3, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-03-01", FormatLabel(at.UnixMilli(), 30, time.UTC))
	assert.Equal(t, "2024-03-01", FormatLabel(at.UnixMilli(), 365, time.UTC))

	// the label follows the viewer's location
	kolkata := time.FixedZone("IST", 5*3600+1800)
	assert.Equal(t, "2024-03-02", FormatLabel(at.UnixMilli(), 30, kolkata))
}

func TestBuildSeries(t *testing.T) {
	base := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)
	prices := []MarketChartData{
		{ms(base), 100.5},
		{ms(base.Add(5 * time.Minute)), 101},
	}

	series := BuildSeries(prices, 1, "inr", nil)
	assert.Equal(t, []string{"1:0 PM", "1:5 PM"}, series.Labels)
	assert.Equal(t, []float64{100.5, 101}, series.Values)
	assert.Equal(t, "Price ( Past 1 Days ) in INR", series.Label)
	assert.Equal(t, 1, series.Days)

	series = BuildSeries(prices, 90, "usd", time.UTC)
	assert.Equal(t, []string{"2024-01-01", "2024-01-01"}, series.Labels)
	assert.Equal(t, "Price ( Past 90 Days ) in USD", series.Label)
}

func TestBuildSeries_Empty(t *testing.T) {
	series := BuildSeries(nil, 30, "inr", time.UTC)
	assert.NotNil(t, series.Labels)
	assert.Empty(t, series.Labels)
	assert.Empty(t, series.Values)
}
