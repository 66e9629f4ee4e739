package coingecko_common

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const DefaultUserAgent = "Mozilla/5.0 Market-Dashboard"

// CoingeckoRequestBuilder assembles CoinGecko URLs and requests.
// The API key only ever goes to a header, so BuildURL doubles as the fetch
// cache key of an endpoint.
type CoingeckoRequestBuilder struct {
	baseURL string
	apiPath string
	query   url.Values
	header  http.Header
	apiKey  APIKey
}

// NewCoingeckoRequestBuilder starts a GET request for apiPath on baseURL
func NewCoingeckoRequestBuilder(baseURL, apiPath string) *CoingeckoRequestBuilder {
	header := http.Header{}
	header.Set("Accept", "application/json")
	header.Set("User-Agent", DefaultUserAgent)

	return &CoingeckoRequestBuilder{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiPath: apiPath,
		query:   url.Values{},
		header:  header,
	}
}

// With sets a query parameter
func (rb *CoingeckoRequestBuilder) With(key, value string) *CoingeckoRequestBuilder {
	rb.query.Set(key, value)
	return rb
}

// WithCurrency sets vs_currency, lower-cased. Empty currencies are skipped.
func (rb *CoingeckoRequestBuilder) WithCurrency(currency string) *CoingeckoRequestBuilder {
	if currency != "" {
		rb.query.Set("vs_currency", strings.ToLower(currency))
	}
	return rb
}

// WithApiKey attaches the key. Empty keys are skipped.
func (rb *CoingeckoRequestBuilder) WithApiKey(apiKey string, keyType KeyType) *CoingeckoRequestBuilder {
	if apiKey != "" {
		rb.apiKey = APIKey{Key: apiKey, Type: keyType}
	}
	return rb
}

// WithUserAgent replaces the default User-Agent
func (rb *CoingeckoRequestBuilder) WithUserAgent(userAgent string) *CoingeckoRequestBuilder {
	if userAgent != "" {
		rb.header.Set("User-Agent", userAgent)
	}
	return rb
}

// BuildURL returns the full URL. Query parameters are encoded in key order.
func (rb *CoingeckoRequestBuilder) BuildURL() string {
	fullURL := rb.baseURL
	if path := strings.TrimLeft(rb.apiPath, "/"); path != "" {
		fullURL += "/" + path
	}
	if encoded := rb.query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

// Build creates the request for BuildURL
func (rb *CoingeckoRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	return rb.BuildWithURL(ctx, rb.BuildURL())
}

// BuildWithURL creates a request for finalURL carrying the builder's headers and key
func (rb *CoingeckoRequestBuilder) BuildWithURL(ctx context.Context, finalURL string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, finalURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header = rb.header.Clone()
	if name := rb.apiKey.Type.Header(); name != "" {
		req.Header.Set(name, rb.apiKey.Key)
	}
	return req, nil
}
