package schema

import (
	"context"
	"sync"
	"time"

	"github.com/kenalhq/insight-engine/pkg/models"
)

// Cache holds the latest schema snapshot with a TTL. Refresh replaces the
// snapshot wholesale; snapshots are never mutated in place.
//
// The mutex only guards the pointer swap. Discovery runs outside the lock,
// so concurrent callers hitting an expired cache may each trigger a
// redundant discovery - wasted work, not a correctness problem, since
// discovery is idempotent and read-only.
type Cache struct {
	discoverer *Discoverer
	ttl        time.Duration
	now        func() time.Time

	mu       sync.RWMutex
	snapshot *models.SchemaSnapshot
}

// NewCache creates a cache over the discoverer. The now function is
// injectable so tests can control time; pass nil for time.Now.
func NewCache(discoverer *Discoverer, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		discoverer: discoverer,
		ttl:        ttl,
		now:        now,
	}
}

// Get returns the cached snapshot when fresh, otherwise runs discovery and
// stores the result.
func (c *Cache) Get(ctx context.Context) (*models.SchemaSnapshot, error) {
	now := c.now()

	c.mu.RLock()
	cached := c.snapshot
	c.mu.RUnlock()

	if cached != nil && now.Sub(cached.CapturedAt) < c.ttl {
		return cached, nil
	}

	snapshot, err := c.discoverer.Discover(ctx, now)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	return snapshot, nil
}

// Invalidate drops the cached snapshot so the next Get rediscovers.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}
