package coingecko_common

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"
	// Base URL for Pro API
	COINGECKO_PRO_URL = "https://pro-api.coingecko.com"

	// Header names carrying the API key
	ProAPIKeyHeader  = "x-cg-pro-api-key"
	DemoAPIKeyHeader = "x-cg-demo-api-key"
)

// API paths of the endpoints used by the dashboard
const (
	CoinsMarketsPath = "/api/v3/coins/markets"
	CoinPathPrefix   = "/api/v3/coins/"
	MarketChartPath  = "/market_chart"
)
