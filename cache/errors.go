package cache

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
)

// ErrorKind classifies why a resolution failed
type ErrorKind int

const (
	// Unclassified is any failure that is neither rate limiting nor transport
	Unclassified ErrorKind = iota
	// RateLimited means upstream answered 429 Too Many Requests
	RateLimited
	// TransportError covers connectivity failures and non-2xx statuses other than 429
	TransportError
)

const (
	RateLimitMessage  = "Too many requests - API rate limit exceeded. Please try again later."
	UnexpectedMessage = "An unexpected error occurred"
)

func (k ErrorKind) String() string {
	switch k {
	case RateLimited:
		return "rate_limited"
	case TransportError:
		return "transport_error"
	default:
		return "unclassified"
	}
}

// StatusCoder is implemented by errors that carry an upstream HTTP status
type StatusCoder interface {
	HTTPStatusCode() int
}

// FetchError is the classified error returned by the fetch cache
type FetchError struct {
	Kind       ErrorKind
	Key        string
	StatusCode int
	Message    string
	Err        error
}

func (e *FetchError) Error() string {
	return e.Message
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Retryable reports whether re-invoking the resolution may succeed.
// Rate limiting is retryable but only on explicit user request.
func (e *FetchError) Retryable() bool {
	return e.Kind == RateLimited || e.Kind == TransportError
}

// Classify maps any error to a *FetchError. Already classified errors are
// returned unchanged.
func Classify(err error) *FetchError {
	if err == nil {
		return nil
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) {
		return fetchErr
	}

	var statusErr StatusCoder
	if errors.As(err, &statusErr) {
		code := statusErr.HTTPStatusCode()
		if code == http.StatusTooManyRequests {
			return &FetchError{Kind: RateLimited, StatusCode: code, Message: RateLimitMessage, Err: err}
		}
		return &FetchError{Kind: TransportError, StatusCode: code, Message: err.Error(), Err: err}
	}

	var netErr net.Error
	var urlErr *url.Error
	if errors.As(err, &netErr) || errors.As(err, &urlErr) ||
		errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &FetchError{Kind: TransportError, Message: err.Error(), Err: err}
	}

	return &FetchError{Kind: Unclassified, Message: UnexpectedMessage, Err: err}
}

// KindOf returns the classification of err
func KindOf(err error) ErrorKind {
	if fe := Classify(err); fe != nil {
		return fe.Kind
	}
	return Unclassified
}

// IsRateLimited reports whether err was caused by upstream rate limiting
func IsRateLimited(err error) bool {
	return err != nil && KindOf(err) == RateLimited
}
