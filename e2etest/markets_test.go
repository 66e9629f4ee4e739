package e2etest

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/market-dashboard/api"
)

func coinIDs(resp api.CoinsResponse) []string {
	ids := make([]string, 0, len(resp.Coins))
	for _, coin := range resp.Coins {
		ids = append(ids, coin.ID)
	}
	return ids
}

// TestCoinsEndpoint checks the default page of the coin table
func TestCoinsEndpoint(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var coins api.CoinsResponse
	resp := getJSON(t, env, "/api/v1/coins", &coins)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "inr", coins.Currency, "Default currency should be used")
	assert.Equal(t, []string{"bitcoin", "ethereum"}, coinIDs(coins))
	assert.Equal(t, 5, coins.TotalMatching)
	assert.Equal(t, 3, coins.TotalPages)
	assert.Equal(t, 1, coins.Page)
	assert.Equal(t, 2, coins.PageSize)
	assert.False(t, coins.Stale)
	assert.Equal(t, "miss", resp.Header.Get("Cache-Status"))
	assert.NotEmpty(t, resp.Header.Get("ETag"))
}

// TestCoinsEndpoint_Query checks search, sorting and paging
func TestCoinsEndpoint_Query(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	tests := []struct {
		name     string
		query    string
		expected []string
		total    int
	}{
		{"search by name", "?search=coin", []string{"bitcoin", "dogecoin"}, 2},
		{"search by symbol", "?search=SOL", []string{"solana"}, 1},
		{"sort by price ascending", "?sort=price&order=asc", []string{"dogecoin", "tether"}, 5},
		{"sort by change", "?sort=change", []string{"solana", "bitcoin"}, 5},
		{"price range", "?min_price=50&max_price=20000", []string{"tether", "solana"}, 2},
		{"last page", "?page=3", []string{"dogecoin"}, 5},
		{"page beyond last", "?page=9", []string{}, 5},
		{"huge page number", "?page=1000000000000000000", []string{}, 5},
		{"compact layout", "?compact=true", []string{"bitcoin"}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var coins api.CoinsResponse
			resp := getJSON(t, env, "/api/v1/coins"+tt.query, &coins)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.expected, coinIDs(coins))
			assert.Equal(t, tt.total, coins.TotalMatching)
		})
	}

	// every query above is served from one upstream response
	assert.Equal(t, 1, env.MockServer.MarketsRequestCount("market_cap_desc"))
}

// TestCoinsEndpoint_Currencies checks that every currency has its own upstream request
func TestCoinsEndpoint_Currencies(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	var coins api.CoinsResponse
	resp := getJSON(t, env, "/api/v1/coins?currency=USD", &coins)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "usd", coins.Currency)

	resp = getJSON(t, env, "/api/v1/coins?vs_currency=inr", &coins)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "inr", coins.Currency)

	resp = getJSON(t, env, "/api/v1/coins?currency=usd", &coins)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "hit", resp.Header.Get("Cache-Status"))

	assert.Equal(t, 2, env.MockServer.MarketsRequestCount("market_cap_desc"))

	var errResp api.ErrorResponse
	resp = getJSON(t, env, "/api/v1/coins?currency=gbp", &errResp)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "bad_request", errResp.Kind)
}

// TestCoinsEndpoint_RateLimited checks the error mapping when CoinGecko rate limits every key
func TestCoinsEndpoint_RateLimited(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	env.MockServer.FailWith(http.StatusTooManyRequests)

	var errResp api.ErrorResponse
	resp := getJSON(t, env, "/api/v1/coins?currency=usd", &errResp)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "rate_limited", errResp.Kind)
	assert.True(t, errResp.Retryable)
	assert.Equal(t, "Too many requests - API rate limit exceeded. Please try again later.", errResp.Error)
}

// TestCoinsEndpoint_UpstreamDown checks the error mapping of non-2xx answers
func TestCoinsEndpoint_UpstreamDown(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	env.MockServer.FailWith(http.StatusServiceUnavailable)

	var errResp api.ErrorResponse
	resp := getJSON(t, env, "/api/v1/coins?currency=usd", &errResp)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.Equal(t, "transport_error", errResp.Kind)
}

// TestCoinsEndpoint_ProKeyUsed checks that requests carry the configured Pro key
func TestCoinsEndpoint_ProKeyUsed(t *testing.T) {
	env := SetupTest(t)
	defer env.TearDown()

	resp := getJSON(t, env, "/api/v1/coins", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	keys := env.MockServer.APIKeys()
	require.NotEmpty(t, keys)
	assert.Equal(t, "test-api-key", keys[0])
}
