package coingecko_common

import (
	"strconv"
	"strings"

	"github.com/status-im/market-dashboard/config"
)

const DefaultChartDays = 365

// Endpoints builds the request keys of the four CoinGecko calls the
// dashboard makes. Keys always point at the public base URL; the fetcher
// moves them to the Pro host when a Pro key is used.
type Endpoints struct {
	baseURL         string
	listPerPage     int
	trendingPerPage int
}

// NewEndpoints creates endpoints from the configuration
func NewEndpoints(cfg *config.Config) *Endpoints {
	return &Endpoints{
		baseURL:         GetApiBaseUrl(cfg, NoKey),
		listPerPage:     cfg.Dashboard.ListPerPage,
		trendingPerPage: cfg.Dashboard.TrendingPerPage,
	}
}

// BaseURL returns the public base URL keys are built on
func (e *Endpoints) BaseURL() string {
	return e.baseURL
}

// CoinList is the markets list ordered by market cap
func (e *Endpoints) CoinList(currency string) string {
	return e.markets(currency, "market_cap_desc", e.listPerPage)
}

// TrendingCoins is the markets list ordered by CoinGecko's trend score
func (e *Endpoints) TrendingCoins(currency string) string {
	return e.markets(currency, "gecko_desc", e.trendingPerPage)
}

func (e *Endpoints) markets(currency, order string, perPage int) string {
	return NewCoingeckoRequestBuilder(e.baseURL, CoinsMarketsPath).
		WithCurrency(currency).
		With("order", order).
		With("per_page", strconv.Itoa(perPage)).
		With("page", "1").
		With("sparkline", "false").
		With("price_change_percentage", "24h").
		BuildURL()
}

// SingleCoin is the coin detail endpoint
func (e *Endpoints) SingleCoin(id string) string {
	return NewCoingeckoRequestBuilder(e.baseURL, CoinPathPrefix+strings.ToLower(id)).BuildURL()
}

// HistoricalChart is the price history of a coin. Days below 1 use the
// one year default.
func (e *Endpoints) HistoricalChart(id string, days int, currency string) string {
	if days < 1 {
		days = DefaultChartDays
	}
	return NewCoingeckoRequestBuilder(e.baseURL, CoinPathPrefix+strings.ToLower(id)+MarketChartPath).
		WithCurrency(currency).
		With("days", strconv.Itoa(days)).
		BuildURL()
}
