package coingecko_common

import (
	"math"
	"net/http"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/status-im/market-dashboard/config"
)

// IRateLimiterManager picks the limiter a request has to wait on
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForRequest(req *http.Request) *rate.Limiter
}

// Requests per minute used when a key type has no configured limit
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

type limiterKey struct {
	keyType KeyType
	key     string
}

// RateLimiterManager hands out one token bucket per API key. Keyless
// requests share a single bucket, and only when they target CoinGecko.
type RateLimiterManager struct {
	limits      map[KeyType]config.RateLimit
	publicHosts map[string]bool

	mu       sync.Mutex
	limiters map[limiterKey]*rate.Limiter
}

// NewRateLimiterManager creates a manager. Keyless requests to baseURLs are
// limited like requests to the CoinGecko hosts.
func NewRateLimiterManager(cfg config.APIKeyConfig, baseURLs ...string) *RateLimiterManager {
	hosts := map[string]bool{}
	for _, baseURL := range append([]string{COINGECKO_PUBLIC_URL, COINGECKO_PRO_URL}, baseURLs...) {
		if u, err := url.Parse(baseURL); err == nil && u.Hostname() != "" {
			hosts[u.Hostname()] = true
		}
	}

	return &RateLimiterManager{
		limits: map[KeyType]config.RateLimit{
			ProKey:  withDefaultRPM(cfg.Pro, defaultProRPM),
			DemoKey: withDefaultRPM(cfg.Demo, defaultDemoRPM),
			NoKey:   withDefaultRPM(cfg.NoKey, defaultNoKeyRPM),
		},
		publicHosts: hosts,
		limiters:    make(map[limiterKey]*rate.Limiter),
	}
}

// GetLimiterForRequest implements IRateLimiterManager. The key headers set by
// the request builder decide the bucket; nil means the request is not limited.
func (m *RateLimiterManager) GetLimiterForRequest(req *http.Request) *rate.Limiter {
	if m == nil || req == nil || req.URL == nil {
		return nil
	}

	switch {
	case req.Header.Get(ProAPIKeyHeader) != "":
		return m.limiterFor(limiterKey{ProKey, req.Header.Get(ProAPIKeyHeader)})
	case req.Header.Get(DemoAPIKeyHeader) != "":
		return m.limiterFor(limiterKey{DemoKey, req.Header.Get(DemoAPIKeyHeader)})
	case m.publicHosts[req.URL.Hostname()]:
		return m.limiterFor(limiterKey{keyType: NoKey})
	}
	return nil
}

func (m *RateLimiterManager) limiterFor(key limiterKey) *rate.Limiter {
	m.mu.Lock()
	defer m.mu.Unlock()

	if limiter, ok := m.limiters[key]; ok {
		return limiter
	}

	rl := m.limits[key.keyType]
	limit := rate.Limit(float64(rl.RateLimitPerMinute) / 60.0)
	limiter := rate.NewLimiter(limit, burstFor(rl, limit))
	m.limiters[key] = limiter
	return limiter
}

func withDefaultRPM(rl config.RateLimit, rpm int) config.RateLimit {
	if rl.RateLimitPerMinute <= 0 {
		rl.RateLimitPerMinute = rpm
	}
	return rl
}

// burstFor is the configured burst, or one second worth of requests
func burstFor(rl config.RateLimit, limit rate.Limit) int {
	if rl.Burst > 0 {
		return rl.Burst
	}
	if limit <= 1 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
