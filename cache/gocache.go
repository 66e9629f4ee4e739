package cache

import (
	"github.com/patrickmn/go-cache"
)

// GoCache keeps fetch cache entries in go-cache.
// Items are stored without expiration: freshness is judged on Entry.FetchedAt
// by the service, and an old entry must stay readable as stale data.
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a new GoCache instance without a cleanup janitor
func NewGoCache() *GoCache {
	return &GoCache{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

// Get returns the entry stored for key
func (gc *GoCache) Get(key string) (Entry, bool) {
	value, found := gc.cache.Get(key)
	if !found {
		return Entry{}, false
	}
	entry, ok := value.(Entry)
	return entry, ok
}

// Set stores the entry under its key, replacing any previous one
func (gc *GoCache) Set(entry Entry) {
	gc.cache.Set(entry.Key, entry, cache.NoExpiration)
}

// Clear removes all items from cache
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount returns the number of items in cache
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}
