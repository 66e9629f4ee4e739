package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

const (
	listPayload = `[
		{"id":"bitcoin","symbol":"btc","name":"Bitcoin","image":"b.png","current_price":5000,"market_cap":900,"price_change_percentage_24h":1.5},
		{"id":"ethereum","symbol":"eth","name":"Ethereum","image":"e.png","current_price":300,"market_cap":400,"price_change_percentage_24h":-2},
		{"id":"tether","symbol":"usdt","name":"Tether","image":"t.png","current_price":1,"market_cap":100,"price_change_percentage_24h":0}
	]`
	trendingPayload = `[{"id":"pepe","symbol":"pepe","name":"Pepe","current_price":0.01,"market_cap":5,"price_change_percentage_24h":30}]`
	coinPayload     = `{"id":"bitcoin","symbol":"btc","name":"Bitcoin","market_cap_rank":1,
		"description":{"en":"Digital gold. Second sentence."},
		"image":{"large":"l.png"},
		"market_data":{"current_price":{"inr":5000,"usd":60},"market_cap":{"inr":900000000,"usd":12000000}}}`
	chartPayload = `{"prices":[[1704114000000,100],[1704200400000,110]],"market_caps":[],"total_volumes":[]}`
)

// upstream answers fetch cache keys with canned payloads
type upstream struct {
	mu    sync.Mutex
	err   error
	calls map[string]int
}

func (u *upstream) Fetch(ctx context.Context, key string) ([]byte, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.calls == nil {
		u.calls = make(map[string]int)
	}
	u.calls[key]++
	if u.err != nil {
		return nil, u.err
	}

	switch {
	case strings.Contains(key, "order=gecko_desc"):
		return []byte(trendingPayload), nil
	case strings.Contains(key, "/coins/markets"):
		return []byte(listPayload), nil
	case strings.Contains(key, "/market_chart"):
		return []byte(chartPayload), nil
	case strings.Contains(key, "/coins/bitcoin"):
		return []byte(coinPayload), nil
	}
	return nil, &coingecko_common.HTTPStatusError{StatusCode: http.StatusNotFound}
}

func (u *upstream) fail(err error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.err = err
}

type testEnv struct {
	server   *httptest.Server
	upstream *upstream
	cache    *cache.Service
	ticker   *dashboard.Ticker
}

func newTestEnv(t *testing.T) *testEnv {
	cfg := config.Default()
	cfg.Ticker.Enabled = false

	up := &upstream{}
	now := time.Now()
	var clockMu sync.Mutex
	cacheService := cache.NewService(cfg.FetchCache, up, cache.WithClock(func() time.Time {
		clockMu.Lock()
		defer clockMu.Unlock()
		now = now.Add(time.Minute) // every lookup sees an expired entry
		return now
	}))
	endpoints := coingecko_common.NewEndpoints(cfg)
	em := events.NewSubscriptionManager()

	charts := coingecko_market_chart.NewService(cacheService, endpoints, cfg.MarketChart)
	table := dashboard.NewTable(coingecko_markets.NewService(cacheService, endpoints), cfg.Dashboard, em)
	ticker := dashboard.NewTicker(coingecko_trending.NewService(cacheService, endpoints), cfg.Dashboard.Currencies, cfg.Ticker, em)
	coinPage := dashboard.NewCoinPage(coingecko_coins.NewService(cacheService, endpoints), charts, em)

	srv := New("0", cfg.Dashboard, table, ticker, coinPage, charts, cacheService)
	httpServer := httptest.NewServer(srv.Handler())
	t.Cleanup(httpServer.Close)

	return &testEnv{server: httpServer, upstream: up, cache: cacheService, ticker: ticker}
}

func (e *testEnv) get(t *testing.T, path string) (*http.Response, []byte) {
	resp, err := http.Get(e.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp, body
}

func TestServer_Coins(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/coins")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, "miss", resp.Header.Get("Cache-Status"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
	assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))

	var coins CoinsResponse
	require.NoError(t, json.Unmarshal(body, &coins))
	assert.Equal(t, "inr", coins.Currency)
	assert.Equal(t, 3, coins.TotalMatching)
	assert.Equal(t, 1, coins.TotalPages)
	assert.Equal(t, 10, coins.PageSize)
	assert.Equal(t, "bitcoin", coins.Coins[0].ID)
	assert.False(t, coins.Stale)
}

func TestServer_CoinsQuery(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/api/v1/coins?currency=USD&search=E&sort=price&order=asc&min_price=abc&max_price=1000&compact=true")

	var coins CoinsResponse
	require.NoError(t, json.Unmarshal(body, &coins))
	assert.Equal(t, "usd", coins.Currency)
	assert.Equal(t, 5, coins.PageSize)
	// "abc" is no bound; Ethereum and Tether contain "e" and cost at most 1000
	require.Equal(t, 2, coins.TotalMatching)
	assert.Equal(t, "tether", coins.Coins[0].ID)
	assert.Equal(t, "ethereum", coins.Coins[1].ID)
}

func TestServer_CoinsPageBeyondLast(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/api/v1/coins?page=9&page_size=2")

	var coins CoinsResponse
	require.NoError(t, json.Unmarshal(body, &coins))
	assert.Empty(t, coins.Coins)
	assert.NotNil(t, coins.Coins)
	assert.Equal(t, 3, coins.TotalMatching)
	assert.Equal(t, 2, coins.TotalPages)
}

func TestServer_UnsupportedCurrency(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/coins?currency=gbp")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(body), `"kind":"bad_request"`)
	assert.Empty(t, env.upstream.calls)
}

func TestServer_RateLimited(t *testing.T) {
	env := newTestEnv(t)
	env.upstream.fail(&coingecko_common.HTTPStatusError{StatusCode: http.StatusTooManyRequests})

	resp, body := env.get(t, "/api/v1/coins")
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var errResp ErrorResponse
	require.NoError(t, json.Unmarshal(body, &errResp))
	assert.Equal(t, cache.RateLimitMessage, errResp.Error)
	assert.Equal(t, "rate_limited", errResp.Kind)
	assert.True(t, errResp.Retryable)
}

func TestServer_TransportAndUnexpectedErrors(t *testing.T) {
	env := newTestEnv(t)

	env.upstream.fail(&coingecko_common.HTTPStatusError{StatusCode: http.StatusServiceUnavailable})
	resp, body := env.get(t, "/api/v1/trending")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Contains(t, string(body), `"kind":"transport_error"`)

	env.upstream.fail(errors.New("something odd"))
	resp, body = env.get(t, "/api/v1/coins/bitcoin")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, string(body), cache.UnexpectedMessage)
}

func TestServer_StaleAfterFailure(t *testing.T) {
	env := newTestEnv(t)

	resp, _ := env.get(t, "/api/v1/coins")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	env.upstream.fail(&coingecko_common.HTTPStatusError{StatusCode: http.StatusTooManyRequests})

	resp, body := env.get(t, "/api/v1/coins")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "stale", resp.Header.Get("Cache-Status"))

	var coins CoinsResponse
	require.NoError(t, json.Unmarshal(body, &coins))
	assert.True(t, coins.Stale)
	assert.Equal(t, cache.RateLimitMessage, coins.Error)
	assert.Equal(t, 3, coins.TotalMatching)
}

func TestServer_Coin(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/coins/bitcoin?currency=usd")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var coin CoinResponse
	require.NoError(t, json.Unmarshal(body, &coin))
	assert.Equal(t, "Bitcoin", coin.Coin.Name)
	assert.Equal(t, 60.0, coin.Summary.Price)
	assert.Equal(t, int64(12), coin.Summary.MarketCapMillions)
	assert.Equal(t, "Digital gold.", coin.Summary.Headline)

	resp, _ = env.get(t, "/api/v1/coins/dogecoin")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}

func TestServer_Chart(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/coins/bitcoin/chart?days=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var chart ChartResponse
	require.NoError(t, json.Unmarshal(body, &chart))
	assert.Equal(t, 1, chart.Days)
	assert.Equal(t, "Price ( Past 1 Days ) in INR", chart.Series.Label)
	assert.Equal(t, []string{"1:0 PM", "1:0 PM"}, chart.Series.Labels)
	assert.Equal(t, []float64{100, 110}, chart.Series.Values)

	_, body = env.get(t, "/api/v1/coins/bitcoin/chart?days=30&tz=Asia/Kolkata")
	require.NoError(t, json.Unmarshal(body, &chart))
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, chart.Series.Labels)

	// no days: the page opens on the 24 hour chart
	_, body = env.get(t, "/api/v1/coins/bitcoin/chart")
	require.NoError(t, json.Unmarshal(body, &chart))
	assert.Equal(t, 1, chart.Days)
}

func TestServer_ChartBadInput(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{
		"/api/v1/coins/bitcoin/chart?days=0",
		"/api/v1/coins/bitcoin/chart?days=abc",
		"/api/v1/coins/bitcoin/chart?days=30&tz=Mars/Base",
	} {
		resp, _ := env.get(t, path)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestServer_ChartDays(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/api/v1/chart_days")

	var days ChartDaysResponse
	require.NoError(t, json.Unmarshal(body, &days))
	require.Len(t, days.ChartDays, 4)
	assert.Equal(t, "24 Hours", days.ChartDays[0].Label)
	assert.Equal(t, 1, days.DefaultDays)
}

func TestServer_Trending(t *testing.T) {
	env := newTestEnv(t)

	resp, body := env.get(t, "/api/v1/trending?currency=usd")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var trending TrendingResponse
	require.NoError(t, json.Unmarshal(body, &trending))
	assert.Equal(t, "usd", trending.Currency)
	assert.Equal(t, dashboard.Ready, trending.State)
	require.Len(t, trending.Coins, 1)
	assert.Equal(t, "pepe", trending.Coins[0].ID)

	// stored list is served without another fetch
	env.get(t, "/api/v1/trending?currency=usd")
	key := coingecko_common.NewEndpoints(config.Default()).TrendingCoins("usd")
	assert.Equal(t, 1, env.upstream.calls[key])

	// refresh=true goes to the cache again
	env.get(t, "/api/v1/trending?currency=usd&refresh=true")
	assert.Equal(t, 2, env.upstream.calls[key])
}

func TestServer_Health(t *testing.T) {
	env := newTestEnv(t)

	_, body := env.get(t, "/health")
	assert.JSONEq(t, `{"status":"ok","services":{"ticker":"unknown"},
		"fetch_cache":{"items":0,"hits":0,"misses":0,"failures":0}}`, string(body))

	env.get(t, "/api/v1/trending")
	_, body = env.get(t, "/health")

	var health HealthResponse
	require.NoError(t, json.Unmarshal(body, &health))
	assert.Equal(t, "up", health.Services["ticker"])
	require.NotNil(t, health.FetchCache)
	assert.Equal(t, 1, health.FetchCache.Items)
	assert.Positive(t, health.FetchCache.Misses)
}

func TestServer_RequestIDIsKept(t *testing.T) {
	env := newTestEnv(t)

	req, err := http.NewRequest(http.MethodGet, env.server.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set(RequestIDHeader, "abc-123")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(RequestIDHeader))
}

func TestServer_TickerStream(t *testing.T) {
	env := newTestEnv(t)

	wsURL := "ws" + strings.TrimPrefix(env.server.URL, "http") + "/api/v1/ws/ticker?currency=inr"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var first TrendingResponse
	require.NoError(t, conn.ReadJSON(&first))
	assert.Equal(t, "inr", first.Currency)
	assert.Equal(t, dashboard.Ready, first.State)
	require.Len(t, first.Coins, 1)

	// a refresh that fails pushes the last list marked stale
	env.upstream.fail(&coingecko_common.HTTPStatusError{StatusCode: http.StatusTooManyRequests})
	env.ticker.Refresh(context.Background(), "inr")

	var next TrendingResponse
	require.NoError(t, conn.ReadJSON(&next))
	assert.Equal(t, dashboard.Errored, next.State)
	assert.True(t, next.Stale)
	assert.Equal(t, cache.RateLimitMessage, next.Error)
	assert.Equal(t, "pepe", next.Coins[0].ID)
}
