package core

import (
	"context"

	"github.com/status-im/market-dashboard/api"
	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/coingecko_coins"
	"github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_market_chart"
	"github.com/status-im/market-dashboard/coingecko_markets"
	"github.com/status-im/market-dashboard/coingecko_trending"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/events"
)

// Setup creates and registers all services
func Setup(ctx context.Context, cfg *config.Config) (*Registry, error) {
	registry := NewRegistry()

	// The fetch cache owns the only network path to CoinGecko
	fetcher := coingecko_common.NewFetcher(cfg)
	cacheService := cache.NewService(cfg.FetchCache, fetcher)
	registry.Register(cacheService)

	registry.Register(NewCacheReporter(cacheService, cfg.Ticker.CacheReportInterval))

	endpoints := coingecko_common.NewEndpoints(cfg)

	marketsService := coingecko_markets.NewService(cacheService, endpoints)
	registry.Register(marketsService)

	trendingService := coingecko_trending.NewService(cacheService, endpoints)
	registry.Register(trendingService)

	coinsService := coingecko_coins.NewService(cacheService, endpoints)
	registry.Register(coinsService)

	marketChartService := coingecko_market_chart.NewService(cacheService, endpoints, cfg.MarketChart)
	registry.Register(marketChartService)

	subscriptions := events.NewSubscriptionManager()

	table := dashboard.NewTable(marketsService, cfg.Dashboard, subscriptions)
	coinPage := dashboard.NewCoinPage(coinsService, marketChartService, subscriptions)

	ticker := dashboard.NewTicker(trendingService, cfg.Dashboard.Currencies, cfg.Ticker, subscriptions)
	registry.Register(ticker)

	// Create HTTP server and register it as a core
	server := api.New(cfg.Port, cfg.Dashboard, table, ticker, coinPage, marketChartService, cacheService)
	registry.Register(server)

	return registry, nil
}
