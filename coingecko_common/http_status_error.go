package coingecko_common

import (
	"fmt"
	"net/http"
)

// HTTPStatusError is returned for every non-2xx CoinGecko response
type HTTPStatusError struct {
	StatusCode int
	RetryAfter string
	Body       []byte
}

func (e *HTTPStatusError) Error() string {
	if e.StatusCode == http.StatusTooManyRequests {
		return fmt.Sprintf("rate limit exceeded (status %d), retry after %q: %s",
			e.StatusCode, e.RetryAfter, truncateBody(e.Body))
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.StatusCode, truncateBody(e.Body))
}

// HTTPStatusCode lets the fetch cache classify the error without importing this package
func (e *HTTPStatusError) HTTPStatusCode() int {
	return e.StatusCode
}

// IsRateLimited reports a 429 response
func (e *HTTPStatusError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsKeyRejected reports a response that means the API key itself is the problem
func (e *HTTPStatusError) IsKeyRejected() bool {
	return e.StatusCode == http.StatusTooManyRequests ||
		e.StatusCode == http.StatusUnauthorized ||
		e.StatusCode == http.StatusForbidden
}

func truncateBody(body []byte) string {
	const maxLen = 256
	if len(body) > maxLen {
		return string(body[:maxLen]) + "..."
	}
	return string(body)
}
