package cache

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/metrics"
)

// Service is the URL-keyed fetch cache. It is created and owned by the
// composition root; there is no package level instance.
type Service struct {
	goCache *GoCache
	fetcher Fetcher
	config  Config
	now     func() time.Time
	group   singleflight.Group

	hits     atomic.Int64
	misses   atomic.Int64
	failures atomic.Int64
}

// Option customizes a Service
type Option func(*Service)

// WithClock replaces time.Now, used by tests to move time
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new cache service with the given configuration
func NewService(config Config, fetcher Fetcher, opts ...Option) *Service {
	if config.FreshnessWindow <= 0 {
		config.FreshnessWindow = DefaultCacheConfig().FreshnessWindow
	}

	s := &Service{
		goCache: NewGoCache(),
		fetcher: fetcher,
		config:  config,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.goCache == nil || s.fetcher == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.goCache != nil {
		s.Clear()
	}
}

// Resolve implements ICache
func (s *Service) Resolve(ctx context.Context, key string) ([]byte, error) {
	result, err := s.ResolveWithStatus(ctx, key)
	if err != nil {
		return nil, err
	}
	return result.Payload, nil
}

// ResolveWithStatus implements ICache
func (s *Service) ResolveWithStatus(ctx context.Context, key string) (Result, error) {
	if entry, ok := s.goCache.Get(key); ok && s.isFresh(entry) {
		s.hits.Add(1)
		metrics.RecordFetchCacheLookup(interfaces.CacheStatusHit.String())
		return Result{Payload: entry.Payload, FetchedAt: entry.FetchedAt, Status: interfaces.CacheStatusHit}, nil
	}

	s.misses.Add(1)
	metrics.RecordFetchCacheLookup(interfaces.CacheStatusMiss.String())

	var (
		entry Entry
		err   error
	)
	if s.config.CoalesceRequests {
		var value interface{}
		// the shared fetch outlives the caller that happened to start it
		fetchCtx := context.WithoutCancel(ctx)
		value, err, _ = s.group.Do(key, func() (interface{}, error) {
			return s.fetchAndStore(fetchCtx, key)
		})
		if err == nil {
			entry = value.(Entry)
		}
	} else {
		entry, err = s.fetchAndStore(ctx, key)
	}
	if err != nil {
		return Result{}, err
	}

	return Result{Payload: entry.Payload, FetchedAt: entry.FetchedAt, Status: interfaces.CacheStatusMiss}, nil
}

// fetchAndStore performs the network call and overwrites the entry on success only
func (s *Service) fetchAndStore(ctx context.Context, key string) (Entry, error) {
	start := time.Now()
	payload, err := s.fetcher.Fetch(ctx, key)
	metrics.RecordFetchDuration(time.Since(start))

	if err != nil {
		s.failures.Add(1)
		fetchErr := withKey(Classify(err), key)
		metrics.RecordFetchCacheFailure(fetchErr.Kind.String())
		log.Printf("FetchCache: fetch failed for %s (%s): %v", key, fetchErr.Kind, err)
		return Entry{}, fetchErr
	}

	entry := Entry{Key: key, Payload: payload, FetchedAt: s.now()}
	s.goCache.Set(entry)
	return entry, nil
}

// Peek implements ICache
func (s *Service) Peek(key string) (Entry, bool) {
	return s.goCache.Get(key)
}

func (s *Service) isFresh(entry Entry) bool {
	return entry.Age(s.now()) < s.config.FreshnessWindow
}

// Stats returns statistics about the cache service
func (s *Service) Stats() ServiceStats {
	return ServiceStats{
		Items:    s.goCache.ItemCount(),
		Hits:     s.hits.Load(),
		Misses:   s.misses.Load(),
		Failures: s.failures.Load(),
	}
}

// ServiceStats represents cache service statistics
type ServiceStats struct {
	Items    int   // Number of stored entries
	Hits     int64 // Resolutions served from memory
	Misses   int64 // Resolutions that went to the network
	Failures int64 // Network calls that failed
}

// Clear removes all items from cache
func (s *Service) Clear() {
	s.goCache.Clear()
}

func withKey(fetchErr *FetchError, key string) *FetchError {
	if fetchErr.Key == key {
		return fetchErr
	}
	copied := *fetchErr
	copied.Key = key
	return &copied
}
