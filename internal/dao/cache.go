package dao

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/govportal/portalctl/internal/model1"
)

const (
	// DefaultCacheTTL is the default time-to-live for cached pages.
	DefaultCacheTTL = 5 * time.Second

	// DefaultCacheEntries caps the number of cached pages.
	DefaultCacheEntries = 256
)

type cacheEntry struct {
	page      model1.Page[model1.Row]
	timestamp time.Time
}

// PageCache provides TTL based caching of fetched pages keyed by resource and
// query.
type PageCache struct {
	data       map[string]cacheEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
	mx         sync.RWMutex
}

// NewPageCache returns a new cache. A non positive ttl disables caching.
func NewPageCache(ttl time.Duration) *PageCache {
	return &PageCache{
		data:       make(map[string]cacheEntry),
		ttl:        ttl,
		maxEntries: DefaultCacheEntries,
		now:        time.Now,
	}
}

// PageKey returns the cache key of a query against a resource.
func PageKey(rid *ResourceID, q *model1.Query) string {
	if q == nil {
		return rid.String() + ":all"
	}
	return fmt.Sprintf("%s:%d:%d:%s", rid, q.Page, q.Limit, q.Search)
}

// Get returns the cached page for key if still fresh.
func (c *PageCache) Get(key string) (model1.Page[model1.Row], bool) {
	if c == nil || c.ttl <= 0 {
		return model1.Page[model1.Row]{}, false
	}

	c.mx.RLock()
	defer c.mx.RUnlock()

	e, ok := c.data[key]
	if !ok || c.now().Sub(e.timestamp) > c.ttl {
		return model1.Page[model1.Row]{}, false
	}

	return model1.Page[model1.Row]{Data: model1.Rows(e.page.Data).Clone(), Total: e.page.Total}, true
}

// Set stores a page, evicting the oldest entry when full.
func (c *PageCache) Set(key string, p model1.Page[model1.Row]) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	if _, ok := c.data[key]; !ok && len(c.data) >= c.maxEntries {
		var (
			oldestKey  string
			oldestTime time.Time
		)
		for k, v := range c.data {
			if oldestKey == "" || v.timestamp.Before(oldestTime) {
				oldestKey, oldestTime = k, v.timestamp
			}
		}
		delete(c.data, oldestKey)
	}
	c.data[key] = cacheEntry{
		page:      model1.Page[model1.Row]{Data: model1.Rows(p.Data).Clone(), Total: p.Total},
		timestamp: c.now(),
	}
}

// Len returns the number of cached pages.
func (c *PageCache) Len() int {
	if c == nil {
		return 0
	}

	c.mx.RLock()
	defer c.mx.RUnlock()

	return len(c.data)
}

// InvalidatePrefix removes all entries whose keys start with prefix.
func (c *PageCache) InvalidatePrefix(prefix string) int {
	if c == nil || prefix == "" {
		return 0
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	var n int
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
			n++
		}
	}

	return n
}

// Clear removes all entries from the cache.
func (c *PageCache) Clear() {
	if c == nil {
		return
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	c.data = make(map[string]cacheEntry)
}
