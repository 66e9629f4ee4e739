package interfaces

// CacheStatus tells where a response came from
type CacheStatus string

const (
	CacheStatusHit   CacheStatus = "hit"
	CacheStatusMiss  CacheStatus = "miss"
	CacheStatusStale CacheStatus = "stale"
)

func (cs CacheStatus) String() string {
	return string(cs)
}
