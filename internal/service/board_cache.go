package service

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// BoardCache holds board read models for a bounded time. Entries are
// dropped by the cache invalidation subscriber as soon as the board changes,
// so the TTL only bounds staleness caused by writers in other processes.
type BoardCache struct {
	items *gocache.Cache

	mu      sync.Mutex
	gens    map[string]uint64
	flushes uint64
}

// CacheToken records how often a board had been invalidated when a load
// began. SetIfCurrent refuses results whose token has gone stale.
type CacheToken struct {
	gen     uint64
	flushes uint64
}

// NewBoardCache returns a cache whose entries expire after ttl. A ttl of
// zero or less disables caching.
func NewBoardCache(ttl time.Duration) *BoardCache {
	if ttl <= 0 {
		return &BoardCache{}
	}
	return &BoardCache{items: gocache.New(ttl, 2*ttl), gens: make(map[string]uint64)}
}

func (c *BoardCache) Get(boardID string) (BoardDetails, bool) {
	if c == nil || c.items == nil {
		return BoardDetails{}, false
	}
	v, ok := c.items.Get(boardID)
	if !ok {
		return BoardDetails{}, false
	}
	d, ok := v.(BoardDetails)
	return d, ok
}

func (c *BoardCache) Set(d BoardDetails) {
	if c == nil || c.items == nil {
		return
	}
	c.items.SetDefault(d.ID, d)
}

// Token must be taken before the load whose result is passed to
// SetIfCurrent.
func (c *BoardCache) Token(boardID string) CacheToken {
	if c == nil || c.items == nil {
		return CacheToken{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return CacheToken{gen: c.gens[boardID], flushes: c.flushes}
}

// SetIfCurrent stores d unless the board was invalidated after tok was
// taken, in which case d may predate the change and is dropped.
func (c *BoardCache) SetIfCurrent(d BoardDetails, tok CacheToken) bool {
	if c == nil || c.items == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gens[d.ID] != tok.gen || c.flushes != tok.flushes {
		return false
	}
	c.items.SetDefault(d.ID, d)
	return true
}

func (c *BoardCache) Invalidate(boardID string) {
	if c == nil || c.items == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[boardID]++
	c.items.Delete(boardID)
}

// Flush drops every entry.
func (c *BoardCache) Flush() {
	if c == nil || c.items == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.flushes++
	clear(c.gens)
	c.items.Flush()
}

func (c *BoardCache) Len() int {
	if c == nil || c.items == nil {
		return 0
	}
	return c.items.ItemCount()
}
