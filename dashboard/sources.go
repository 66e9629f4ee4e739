package dashboard

import (
	"context"
	"time"

	"github.com/status-im/market-dashboard/coin_list"
	"github.com/status-im/market-dashboard/coingecko_coins"
	"github.com/status-im/market-dashboard/coingecko_market_chart"
	"github.com/status-im/market-dashboard/interfaces"
)

// MarketsSource provides the full coin list of a currency
type MarketsSource interface {
	Markets(ctx context.Context, currency string) ([]coin_list.Coin, interfaces.CacheStatus, error)
}

// TrendingSource provides the trending coins of a currency
type TrendingSource interface {
	Trending(ctx context.Context, currency string) ([]coin_list.Coin, interfaces.CacheStatus, error)
}

// CoinSource provides the details of a single coin
type CoinSource interface {
	Coin(ctx context.Context, id string) (*coingecko_coins.Coin, interfaces.CacheStatus, error)
}

// ChartSource provides the price series of a coin
type ChartSource interface {
	Series(ctx context.Context, params coingecko_market_chart.MarketChartParams, loc *time.Location) (coingecko_market_chart.ChartSeries, interfaces.CacheStatus, error)
	// PeekSeries builds the series from the last stored chart without fetching
	PeekSeries(params coingecko_market_chart.MarketChartParams, loc *time.Location) (coingecko_market_chart.ChartSeries, time.Time, bool)
}
