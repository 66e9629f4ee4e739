package coingecko_market_chart

import (
	"fmt"
	"strings"
	"time"
)

// BuildSeries turns price points into chart labels and values. A one day
// range is labelled with the time of day, longer ranges with the date.
// A nil loc means UTC.
func BuildSeries(prices []MarketChartData, days int, currency string, loc *time.Location) ChartSeries {
	if loc == nil {
		loc = time.UTC
	}

	series := ChartSeries{
		Labels: make([]string, 0, len(prices)),
		Values: make([]float64, 0, len(prices)),
		Label:  SeriesLabel(days, currency),
		Days:   days,
	}
	for _, point := range prices {
		series.Labels = append(series.Labels, FormatLabel(int64(point[0]), days, loc))
		series.Values = append(series.Values, point[1])
	}
	return series
}

// SeriesLabel is the dataset caption, e.g. "Price ( Past 30 Days ) in INR"
func SeriesLabel(days int, currency string) string {
	return fmt.Sprintf("Price ( Past %d Days ) in %s", days, strings.ToUpper(currency))
}

// FormatLabel formats a millisecond timestamp. For days == 1 it gives the
// hour and minute ("3:7 PM"): hours after noon are shifted by 12, minutes are
// not padded. Otherwise it gives the date as YYYY-MM-DD.
func FormatLabel(timestampMs int64, days int, loc *time.Location) string {
	t := time.UnixMilli(timestampMs).In(loc)
	if days != 1 {
		return t.Format(time.DateOnly)
	}

	hour := t.Hour()
	if hour > 12 {
		return fmt.Sprintf("%d:%d PM", hour-12, t.Minute())
	}
	return fmt.Sprintf("%d:%d AM", hour, t.Minute())
}
