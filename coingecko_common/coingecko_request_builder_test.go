package coingecko_common

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoingeckoRequestBuilder_KeyGoesToHeader(t *testing.T) {
	tests := []struct {
		name       string
		keyType    KeyType
		header     string
		noneHeader string
	}{
		{"pro key", ProKey, ProAPIKeyHeader, DemoAPIKeyHeader},
		{"demo key", DemoKey, DemoAPIKeyHeader, ProAPIKeyHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			builder := NewCoingeckoRequestBuilder(COINGECKO_PUBLIC_URL, CoinsMarketsPath).
				WithCurrency("usd").
				WithApiKey("secret", tt.keyType)

			req, err := builder.Build(context.Background())
			require.NoError(t, err)

			assert.Equal(t, "secret", req.Header.Get(tt.header))
			assert.Empty(t, req.Header.Get(tt.noneHeader))
			assert.NotContains(t, req.URL.String(), "secret")
			assert.Equal(t, "https://api.coingecko.com/api/v3/coins/markets?vs_currency=usd", builder.BuildURL())
		})
	}
}

func TestCoingeckoRequestBuilder_Headers(t *testing.T) {
	req, err := NewCoingeckoRequestBuilder(COINGECKO_PUBLIC_URL+"/", "/api/v3/coins/bitcoin").
		WithUserAgent("Test-Agent").
		Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "https://api.coingecko.com/api/v3/coins/bitcoin", req.URL.String())
	assert.Equal(t, "Test-Agent", req.Header.Get("User-Agent"))
	assert.Equal(t, "application/json", req.Header.Get("Accept"))
	assert.Empty(t, req.Header.Get(ProAPIKeyHeader))
}

func TestCoingeckoRequestBuilder_BuildURL(t *testing.T) {
	builder := NewCoingeckoRequestBuilder("http://localhost:8081", "").
		With("per_page", "10").
		With("order", "gecko_desc").
		WithCurrency("INR").
		WithApiKey("", ProKey)

	assert.Equal(t, "http://localhost:8081?order=gecko_desc&per_page=10&vs_currency=inr", builder.BuildURL())

	req, err := builder.Build(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, req.Header.Get("User-Agent"))
	assert.Empty(t, req.Header.Get(ProAPIKeyHeader))
}
