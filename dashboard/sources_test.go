package dashboard

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/coingecko_coins"
	"github.com/status-im/market-dashboard/coingecko_market_chart"
	"github.com/status-im/market-dashboard/interfaces"
)

// MockMarkets implements MarketsSource for testing
type MockMarkets struct {
	mock.Mock
}

func (m *MockMarkets) Markets(ctx context.Context, currency string) ([]coin_list.Coin, interfaces.CacheStatus, error) {
	args := m.Called(currency)
	coins, _ := args.Get(0).([]coin_list.Coin)
	return coins, args.Get(1).(interfaces.CacheStatus), args.Error(2)
}

// MockTrending implements TrendingSource for testing
type MockTrending struct {
	mock.Mock
}

func (m *MockTrending) Trending(ctx context.Context, currency string) ([]coin_list.Coin, interfaces.CacheStatus, error) {
	args := m.Called(currency)
	coins, _ := args.Get(0).([]coin_list.Coin)
	return coins, args.Get(1).(interfaces.CacheStatus), args.Error(2)
}

// MockCoins implements CoinSource for testing
type MockCoins struct {
	mock.Mock
}

func (m *MockCoins) Coin(ctx context.Context, id string) (*coingecko_coins.Coin, interfaces.CacheStatus, error) {
	args := m.Called(id)
	coin, _ := args.Get(0).(*coingecko_coins.Coin)
	return coin, args.Get(1).(interfaces.CacheStatus), args.Error(2)
}

// MockCharts implements ChartSource for testing
type MockCharts struct {
	mock.Mock
}

func (m *MockCharts) Series(ctx context.Context, params coingecko_market_chart.MarketChartParams, loc *time.Location) (coingecko_market_chart.ChartSeries, interfaces.CacheStatus, error) {
	args := m.Called(params)
	return args.Get(0).(coingecko_market_chart.ChartSeries), args.Get(1).(interfaces.CacheStatus), args.Error(2)
}

func (m *MockCharts) PeekSeries(params coingecko_market_chart.MarketChartParams, loc *time.Location) (coingecko_market_chart.ChartSeries, time.Time, bool) {
	args := m.Called(params, loc)
	return args.Get(0).(coingecko_market_chart.ChartSeries), args.Get(1).(time.Time), args.Bool(2)
}

func makeCoins(ids ...string) []coin_list.Coin {
	result := make([]coin_list.Coin, 0, len(ids))
	for i, id := range ids {
		result = append(result, coin_list.Coin{
			ID:           id,
			Symbol:       id,
			Name:         id,
			CurrentPrice: float64(i + 1),
			MarketCap:    float64(100 - i),
		})
	}
	return result
}
