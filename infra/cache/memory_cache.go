package cache

import (
	"context"
	"sync"
	"time"

	"github.com/coreledger/banking/pkg/cache"
)

type memoryEntry struct {
	snapshot  cache.AccountSnapshot
	expiresAt time.Time
}

// MemoryCache implements cache.AccountCache with in-process storage. Used
// when no Redis URL is configured, and in tests.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewMemoryCache creates an in-memory account cache. A zero ttl means
// entries do not expire.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

// Get retrieves a snapshot; expired entries report a miss.
func (c *MemoryCache) Get(ctx context.Context, number string) (*cache.AccountSnapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	entry, ok := c.entries[number]
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		return nil, false
	}
	snap := entry.snapshot
	return &snap, true
}

// Set stores a snapshot with the configured TTL.
func (c *MemoryCache) Set(ctx context.Context, snapshot *cache.AccountSnapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry := memoryEntry{snapshot: *snapshot}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}
	c.entries[snapshot.Number] = entry
}

// Delete invalidates a snapshot.
func (c *MemoryCache) Delete(ctx context.Context, number string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, number)
}
