package cache

//go:generate mockgen -destination=mocks/fetcher.go . Fetcher
//go:generate mockgen -destination=mocks/cache.go . ICache

import (
	"context"
	"time"

	"github.com/status-im/market-dashboard/interfaces"
)

// Fetcher performs the network round-trip for a request key.
// The key is passed as is; implementations decide how to interpret it.
type Fetcher interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
}

// FetcherFunc adapts a plain function to Fetcher
type FetcherFunc func(ctx context.Context, key string) ([]byte, error)

// Fetch calls f(ctx, key)
func (f FetcherFunc) Fetch(ctx context.Context, key string) ([]byte, error) {
	return f(ctx, key)
}

// Entry is the last successful response stored for a key
type Entry struct {
	Key       string
	Payload   []byte
	FetchedAt time.Time
}

// Age returns how long ago the entry was fetched relative to now
func (e Entry) Age(now time.Time) time.Duration {
	return now.Sub(e.FetchedAt)
}

// Result is what a resolution returns besides the payload
type Result struct {
	Payload   []byte
	FetchedAt time.Time
	Status    interfaces.CacheStatus
}

// ICache interface for the URL-keyed fetch cache
type ICache interface {
	// Resolve returns the payload for key, from memory while it is younger than
	// the freshness window, otherwise from a fresh fetch.
	//
	// On failure the error is a *FetchError and nothing is written: a previous
	// entry for the key stays in place and is still available through Peek.
	Resolve(ctx context.Context, key string) ([]byte, error)

	// ResolveWithStatus is Resolve that also reports whether the payload came
	// from memory or from the network, and when it was fetched
	ResolveWithStatus(ctx context.Context, key string) (Result, error)

	// Peek returns the last stored entry for key regardless of its age
	Peek(key string) (Entry, bool)
}
