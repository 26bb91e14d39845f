package spotcrime

import (
	"context"
	"sync"
	"time"

	"github.com/couchcryptid/crime-report-service/internal/domain"
	"github.com/couchcryptid/crime-report-service/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Source fetches incident records for a query.
type Source interface {
	FetchIncidents(ctx context.Context, q domain.Query) ([]domain.RawIncident, error)
}

// CachedSource wraps a Source with an in-memory LRU cache whose entries
// expire after a fixed TTL.
type CachedSource struct {
	inner   Source
	cache   *lruCache
	metrics *observability.Metrics
}

// NewCachedSource creates a cache decorator around a source.
func NewCachedSource(inner Source, maxEntries int, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *CachedSource {
	return &CachedSource{
		inner:   inner,
		cache:   newLRUCache(maxEntries, ttl, clock),
		metrics: metrics,
	}
}

// FetchIncidents serves a cached response when one is fresh. Errors are not
// cached so a failed upstream call is retried on the next request.
func (c *CachedSource) FetchIncidents(ctx context.Context, q domain.Query) ([]domain.RawIncident, error) {
	key := q.Key()
	if incidents, ok := c.cache.get(key); ok {
		c.metrics.UpstreamCache.WithLabelValues("hit").Inc()
		return incidents, nil
	}
	c.metrics.UpstreamCache.WithLabelValues("miss").Inc()

	incidents, err := c.inner.FetchIncidents(ctx, q)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, incidents)
	return incidents, nil
}

// lruCache is a thread-safe LRU cache of incident lists with per-entry expiry.
type lruCache struct {
	maxEntries int
	ttl        time.Duration
	clock      clockwork.Clock
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key       string
	value     []domain.RawIncident
	expiresAt time.Time
	prev      *entry
	next      *entry
}

func newLRUCache(maxEntries int, ttl time.Duration, clock clockwork.Clock) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		clock:      clock,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) ([]domain.RawIncident, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if !c.clock.Now().Before(e.expiresAt) {
		delete(c.entries, key)
		c.remove(e)
		return nil, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value []domain.RawIncident) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.ttl)
	if e, ok := c.entries[key]; ok {
		e.value = value
		e.expiresAt = expiresAt
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value, expiresAt: expiresAt}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache) moveToFront(e *entry) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache) addToFront(e *entry) {
	e.next = c.head
	e.prev = nil
	if c.head != nil {
		c.head.prev = e
	}
	c.head = e
	if c.tail == nil {
		c.tail = e
	}
}

func (c *lruCache) remove(e *entry) {
	if e.prev != nil {
		e.prev.next = e.next
	} else {
		c.head = e.next
	}
	if e.next != nil {
		e.next.prev = e.prev
	} else {
		c.tail = e.prev
	}
}

func (c *lruCache) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
