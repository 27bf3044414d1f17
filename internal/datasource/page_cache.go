package datasource

import (
	"time"

	cache "github.com/patrickmn/go-cache"
)

// PageCache keeps recently fetched race pages keyed by URL. Stored pages are
// never modified after insertion.
type PageCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewPageCache creates a page cache. It returns nil when ttl is not positive,
// which disables caching.
func NewPageCache(ttl time.Duration) *PageCache {
	if ttl <= 0 {
		return nil
	}
	return &PageCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get returns a cached page.
func (pc *PageCache) Get(url string) ([]byte, bool) {
	v, found := pc.cache.Get(url)
	if !found {
		return nil, false
	}
	page, ok := v.([]byte)
	return page, ok
}

// Set stores a page.
func (pc *PageCache) Set(url string, page []byte) {
	pc.cache.Set(url, page, pc.ttl)
}

// ItemCount returns the number of cached pages, expired or not.
func (pc *PageCache) ItemCount() int {
	return pc.cache.ItemCount()
}
