package search

import (
	"strings"
	"sync"

	"github.com/UnknownOlympus/pinpoint/internal/models"
)

// DefaultCacheCapacity bounds how many distinct queries the cache retains.
const DefaultCacheCapacity = 50

// Cache maps normalized search queries to their result lists. It is bounded
// with FIFO eviction: insertion order determines which entry goes first, and
// reads do not refresh an entry's position. Re-inserting an existing key
// replaces the value without changing its slot in the eviction order.
type Cache struct {
	mu       sync.Mutex
	capacity int
	entries  map[string][]models.SearchResult
	order    []string // keys in insertion order, oldest first
}

// NewCache creates a cache bounded to capacity entries. A non-positive
// capacity falls back to DefaultCacheCapacity.
func NewCache(capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheCapacity
	}
	return &Cache{
		capacity: capacity,
		entries:  make(map[string][]models.SearchResult),
	}
}

// Normalize canonicalizes a query for cache and dedup purposes.
func Normalize(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

// Get returns the cached results for the query, if present. The returned
// slice is a copy: mutating it must not corrupt what later hits see.
func (c *Cache) Get(query string) ([]models.SearchResult, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	results, ok := c.entries[Normalize(query)]
	if !ok {
		return nil, false
	}
	out := make([]models.SearchResult, len(results))
	copy(out, results)
	return out, true
}

// Put stores results under the normalized query, evicting the oldest entry
// when the cache is full.
func (c *Cache) Put(query string, results []models.SearchResult) {
	key := Normalize(query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = results
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = results
	c.order = append(c.order, key)
}

// Len returns the number of cached queries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}
