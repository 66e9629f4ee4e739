package coingecko_common

import (
	"log"
	"sync"
	"time"

	"github.com/status-im/market-dashboard/config"
)

// KeyType tells which CoinGecko plan a key belongs to
type KeyType int

const (
	NoKey KeyType = iota
	ProKey
	DemoKey
)

func (t KeyType) String() string {
	switch t {
	case ProKey:
		return "pro"
	case DemoKey:
		return "demo"
	default:
		return "none"
	}
}

// Header returns the request header carrying a key of this type
func (t KeyType) Header() string {
	switch t {
	case ProKey:
		return ProAPIKeyHeader
	case DemoKey:
		return DemoAPIKeyHeader
	default:
		return ""
	}
}

const defaultKeyBackoff = 5 * time.Minute

// APIKey is a key together with its plan. The zero value is the keyless public API.
type APIKey struct {
	Key  string
	Type KeyType
}

// IAPIKeyManager decides which keys the fetcher tries and in what order
//
//go:generate mockgen -destination=mocks/api_key_manager.go . IAPIKeyManager
type IAPIKeyManager interface {
	// GetAvailableKeys lists Pro keys, then Demo keys, then the keyless entry.
	// Keys in backoff are skipped, except a lone Pro key.
	GetAvailableKeys() []APIKey
	// MarkKeyAsFailed puts key in backoff
	MarkKeyAsFailed(key string)
}

// APIKeyManager implements IAPIKeyManager
type APIKeyManager struct {
	keys    []APIKey
	proKeys int
	backoff time.Duration
	now     func() time.Time

	mu          sync.Mutex
	failedUntil map[string]time.Time
}

// NewAPIKeyManager creates a key manager. A zero backoff uses five minutes.
// Empty and repeated tokens are ignored.
func NewAPIKeyManager(apiTokens *config.APITokens, backoff time.Duration) *APIKeyManager {
	if backoff <= 0 {
		backoff = defaultKeyBackoff
	}

	m := &APIKeyManager{
		backoff:     backoff,
		now:         time.Now,
		failedUntil: make(map[string]time.Time),
	}
	if apiTokens != nil {
		seen := make(map[string]bool)
		m.keys = appendKeys(m.keys, seen, apiTokens.Tokens, ProKey)
		m.proKeys = len(m.keys)
		m.keys = appendKeys(m.keys, seen, apiTokens.DemoTokens, DemoKey)
	}
	return m
}

func appendKeys(keys []APIKey, seen map[string]bool, tokens []string, keyType KeyType) []APIKey {
	for _, token := range tokens {
		if token == "" || seen[token] {
			continue
		}
		seen[token] = true
		keys = append(keys, APIKey{Key: token, Type: keyType})
	}
	return keys
}

// GetAvailableKeys implements IAPIKeyManager
func (m *APIKeyManager) GetAvailableKeys() []APIKey {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	available := make([]APIKey, 0, len(m.keys)+1)
	for _, key := range m.keys {
		lonePro := key.Type == ProKey && m.proKeys == 1
		if lonePro || !now.Before(m.failedUntil[key.Key]) {
			available = append(available, key)
		}
	}
	return append(available, APIKey{Type: NoKey})
}

// MarkKeyAsFailed implements IAPIKeyManager
func (m *APIKeyManager) MarkKeyAsFailed(key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	m.failedUntil[key] = m.now().Add(m.backoff)
	m.mu.Unlock()

	log.Printf("APIKeyManager: key ...%s in backoff for %v", keySuffix(key), m.backoff)
}

// keySuffix is the part of a key safe to log
func keySuffix(key string) string {
	if len(key) <= 4 {
		return ""
	}
	return key[len(key)-4:]
}
