package coingecko_market_chart

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
)

// Service provides market chart data through the fetch cache
type Service struct {
	cache     cache.ICache
	endpoints *coingecko_common.Endpoints
	config    config.MarketChartConfig
}

// NewService creates a new market chart service
func NewService(cache cache.ICache, endpoints *coingecko_common.Endpoints, cfg config.MarketChartConfig) *Service {
	return &Service{
		cache:     cache,
		endpoints: endpoints,
		config:    cfg,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	if s.endpoints == nil {
		return fmt.Errorf("endpoints not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// ChartDays returns the ranges the coin page offers
func (s *Service) ChartDays() []config.ChartDay {
	days := make([]config.ChartDay, len(s.config.ChartDays))
	copy(days, s.config.ChartDays)
	return days
}

// DefaultDays is the range used when none is requested
func (s *Service) DefaultDays() int {
	if s.config.DefaultDays < 1 {
		return coingecko_common.DefaultChartDays
	}
	return s.config.DefaultDays
}

// RequestKey returns the fetch cache key for params. Zero days use the default range.
func (s *Service) RequestKey(params MarketChartParams) string {
	params = params.Normalized()
	if params.Days == 0 {
		params.Days = s.DefaultDays()
	}
	return s.endpoints.HistoricalChart(params.ID, params.Days, params.Currency)
}

// MarketChart fetches market chart data for a specific coin
func (s *Service) MarketChart(ctx context.Context, params MarketChartParams) (*MarketChartResponse, interfaces.CacheStatus, error) {
	params = params.Normalized()
	if params.Days == 0 {
		params.Days = s.DefaultDays()
	}
	if err := params.Validate(); err != nil {
		return nil, "", fmt.Errorf("invalid parameters: %w", err)
	}

	result, err := s.cache.ResolveWithStatus(ctx, s.RequestKey(params))
	if err != nil {
		return nil, "", err
	}

	chart, err := decodeChart(result.Payload)
	if err != nil {
		log.Printf("CoinGecko-MarketChart: failed to decode chart for %s (%d days): %v", params.ID, params.Days, err)
		return nil, "", err
	}
	return chart, result.Status, nil
}

// Series fetches the chart and builds the price series in loc
func (s *Service) Series(ctx context.Context, params MarketChartParams, loc *time.Location) (ChartSeries, interfaces.CacheStatus, error) {
	params = params.Normalized()
	if params.Days == 0 {
		params.Days = s.DefaultDays()
	}

	chart, status, err := s.MarketChart(ctx, params)
	if err != nil {
		return ChartSeries{}, "", err
	}
	return BuildSeries(chart.Prices, params.Days, params.Currency, loc), status, nil
}

// PeekSeries builds the price series in loc from the last stored chart for
// params regardless of its age
func (s *Service) PeekSeries(params MarketChartParams, loc *time.Location) (ChartSeries, time.Time, bool) {
	params = params.Normalized()
	if params.Days == 0 {
		params.Days = s.DefaultDays()
	}

	entry, ok := s.cache.Peek(s.RequestKey(params))
	if !ok {
		return ChartSeries{}, time.Time{}, false
	}
	chart, err := decodeChart(entry.Payload)
	if err != nil {
		return ChartSeries{}, time.Time{}, false
	}
	return BuildSeries(chart.Prices, params.Days, params.Currency, loc), entry.FetchedAt, true
}

func decodeChart(payload []byte) (*MarketChartResponse, error) {
	var chart MarketChartResponse
	if err := json.Unmarshal(payload, &chart); err != nil {
		return nil, fmt.Errorf("failed to decode market chart: %w", err)
	}
	return &chart, nil
}
