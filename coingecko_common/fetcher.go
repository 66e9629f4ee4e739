package coingecko_common

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/metrics"
)

// Fetcher performs CoinGecko requests for fetch cache keys.
// It implements cache.Fetcher.
type Fetcher struct {
	client     *HTTPClientWithRetries
	keyManager IAPIKeyManager
	publicURL  string
	proURL     string
	userAgent  string
}

// NewFetcher wires the retrying client, key manager and rate limiter from config
func NewFetcher(cfg *config.Config) *Fetcher {
	publicURL := GetApiBaseUrl(cfg, NoKey)
	proURL := GetApiBaseUrl(cfg, ProKey)

	opts := RetryOptions{
		MaxRetries:        cfg.Coingecko.MaxRetries,
		BaseBackoff:       cfg.Coingecko.BaseBackoff,
		LogPrefix:         "CoinGecko",
		ConnectionTimeout: cfg.Coingecko.ConnectionTimeout,
		RequestTimeout:    cfg.Coingecko.RequestTimeout,
	}
	limiterManager := NewRateLimiterManager(cfg.Coingecko.APIKeys, publicURL, proURL)
	client := NewHTTPClientWithRetries(opts, metrics.NewMetricsWriter(metrics.ServiceFetcher), limiterManager)

	return NewFetcherWithClient(client, NewAPIKeyManager(cfg.APITokens, cfg.Coingecko.KeyBackoff),
		publicURL, proURL, cfg.Coingecko.UserAgent)
}

// NewFetcherWithClient creates a fetcher from already built parts
func NewFetcherWithClient(client *HTTPClientWithRetries, keyManager IAPIKeyManager, publicURL, proURL, userAgent string) *Fetcher {
	return &Fetcher{
		client:     client,
		keyManager: keyManager,
		publicURL:  publicURL,
		proURL:     proURL,
		userAgent:  userAgent,
	}
}

// Fetch requests key, trying the available API keys in order.
// A key answering 429, 401 or 403 is put in backoff and the next one is
// tried. Any other failure is returned at once.
func (f *Fetcher) Fetch(ctx context.Context, key string) ([]byte, error) {
	var lastErr error

	for _, apiKey := range f.keyManager.GetAvailableKeys() {
		body, err := f.fetchWithKey(ctx, key, apiKey)
		if err == nil {
			return body, nil
		}

		var statusErr *HTTPStatusError
		if !errors.As(err, &statusErr) || !statusErr.IsKeyRejected() {
			return nil, err
		}

		lastErr = err
		if apiKey.Type != NoKey {
			log.Printf("CoinGecko: %s key rejected with status %d, trying next key", apiKey.Type, statusErr.StatusCode)
			f.keyManager.MarkKeyAsFailed(apiKey.Key)
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("no API key available for %s", key)
	}
	return nil, lastErr
}

func (f *Fetcher) fetchWithKey(ctx context.Context, key string, apiKey APIKey) ([]byte, error) {
	requestURL := key
	if apiKey.Type == ProKey {
		requestURL = rebaseURL(key, f.publicURL, f.proURL)
	}

	req, err := NewCoingeckoRequestBuilder(f.publicURL, "").
		WithUserAgent(f.userAgent).
		WithApiKey(apiKey.Key, apiKey.Type).
		BuildWithURL(ctx, requestURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	_, body, _, err := f.client.ExecuteRequest(req)
	return body, err
}
