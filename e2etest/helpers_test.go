package e2etest

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/status-im/market-dashboard/api"
)

// getJSON requests path on the dashboard API and decodes the body into out
func getJSON(t *testing.T, env *TestEnv, path string, out interface{}) *http.Response {
	t.Helper()

	resp, err := http.Get(env.ServerBaseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil {
		require.NoError(t, json.Unmarshal(body, out), "body: %s", string(body))
	}
	return resp
}

// waitForTrending waits until the ticker has trending data for currency
func waitForTrending(t *testing.T, env *TestEnv, currency string) api.TrendingResponse {
	t.Helper()

	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var trending api.TrendingResponse
		resp := getJSON(t, env, "/api/v1/trending?currency="+currency, &trending)
		if resp.StatusCode == http.StatusOK && len(trending.Coins) > 0 {
			return trending
		}
		time.Sleep(100 * time.Millisecond)
	}
	t.Fatalf("Trending data for %s not available", currency)
	return api.TrendingResponse{}
}
