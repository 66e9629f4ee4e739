package coingecko_common_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/time/rate"

	"github.com/status-im/market-dashboard/coingecko_common"
	mock_coingecko_common "github.com/status-im/market-dashboard/coingecko_common/mocks"
)

// newCountingServer answers with the given statuses in turn, then 200
func newCountingServer(t *testing.T, statuses ...int) (*httptest.Server, *atomic.Int32) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(calls.Add(1))
		if n <= len(statuses) {
			w.WriteHeader(statuses[n-1])
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func newLimitedClient(t *testing.T, maxRetries int, limiter *rate.Limiter, times int) *coingecko_common.HTTPClientWithRetries {
	ctrl := gomock.NewController(t)
	manager := mock_coingecko_common.NewMockIRateLimiterManager(ctrl)
	manager.EXPECT().GetLimiterForRequest(gomock.Any()).Return(limiter).Times(times)

	opts := coingecko_common.DefaultRetryOptions()
	opts.MaxRetries = maxRetries
	opts.BaseBackoff = 10 * time.Millisecond
	return coingecko_common.NewHTTPClientWithRetries(opts, nil, manager)
}

func TestHTTPClientWithRetries_RateLimiting_NoLimiter(t *testing.T) {
	server, calls := newCountingServer(t)
	client := newLimitedClient(t, 1, nil, 1)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, body, _, err := client.ExecuteRequest(req)
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))
	assert.Equal(t, int32(1), calls.Load())
}

func TestHTTPClientWithRetries_RateLimiting_NilManager(t *testing.T) {
	server, _ := newCountingServer(t)

	opts := coingecko_common.DefaultRetryOptions()
	opts.MaxRetries = 1
	client := coingecko_common.NewHTTPClientWithRetries(opts, nil, nil)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, _, _, err = client.ExecuteRequest(req)
	assert.NoError(t, err)
}

func TestHTTPClientWithRetries_RateLimiting_WaitsForTokens(t *testing.T) {
	server, calls := newCountingServer(t)
	// 5 requests per second with a burst of 2
	client := newLimitedClient(t, 1, rate.NewLimiter(5, 2), 3)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, _, _, err := client.ExecuteRequest(req)
		require.NoError(t, err)
	}

	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond, "third request waits for a token")
	assert.Equal(t, int32(3), calls.Load())
}

func TestHTTPClientWithRetries_RateLimiting_ContextCancellation(t *testing.T) {
	server, calls := newCountingServer(t)
	limiter := rate.NewLimiter(rate.Every(10*time.Second), 1)
	limiter.Allow() // drain the only token
	client := newLimitedClient(t, 1, limiter, 1)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, _, _, err = client.ExecuteRequest(req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait failed")
	assert.Zero(t, calls.Load())
}

func TestHTTPClientWithRetries_RateLimiting_EveryAttemptIsLimited(t *testing.T) {
	server, calls := newCountingServer(t, http.StatusServiceUnavailable)
	client := newLimitedClient(t, 2, rate.NewLimiter(rate.Inf, 1), 2)

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	require.NoError(t, err)

	_, _, _, err = client.ExecuteRequest(req)
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}
