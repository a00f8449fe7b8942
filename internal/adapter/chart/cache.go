package chart

import (
	"fmt"
	"sync"

	"github.com/couchcryptid/precip-summary-service/internal/domain"
	"github.com/couchcryptid/precip-summary-service/internal/observability"
)

// PNGRenderer draws a series as PNG bytes.
type PNGRenderer interface {
	RenderPNG(series []domain.SeriesPoint, axis domain.ChartAxis, width, height int) ([]byte, error)
}

// CachedRenderer memoizes rendered charts per report and size.
type CachedRenderer struct {
	inner   PNGRenderer
	cache   *lruCache[[]byte]
	metrics *observability.Metrics
}

// NewCachedRenderer creates a cache decorator around a renderer.
func NewCachedRenderer(inner PNGRenderer, maxEntries int, metrics *observability.Metrics) *CachedRenderer {
	return &CachedRenderer{
		inner:   inner,
		cache:   newLRUCache[[]byte](maxEntries),
		metrics: metrics,
	}
}

// RenderReport returns the chart for the report's series over its year range.
func (c *CachedRenderer) RenderReport(report *domain.Report, width, height int) ([]byte, error) {
	key := fmt.Sprintf("%s|%dx%d", report.RunID, width, height)
	if png, ok := c.cache.get(key); ok {
		c.metrics.ChartCache.WithLabelValues("hit").Inc()
		return png, nil
	}
	c.metrics.ChartCache.WithLabelValues("miss").Inc()

	png, err := c.inner.RenderPNG(report.Series, domain.ChartAxisFor(report.YearRange), width, height)
	if err != nil {
		return nil, err
	}
	c.cache.put(key, png)
	return png, nil
}

// lruCache is a small thread-safe LRU cache.
type lruCache[V any] struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry[V]
	head       *entry[V] // most recently used
	tail       *entry[V] // least recently used
}

type entry[V any] struct {
	key   string
	value V
	prev  *entry[V]
	next  *entry[V]
}

func newLRUCache[V any](maxEntries int) *lruCache[V] {
	if maxEntries < 1 {
		maxEntries = 1
	}
	return &lruCache[V]{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry[V]),
	}
}

func (c *lruCache[V]) get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache[V]) put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry[V]{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
}

func (c *lruCache[V]) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *lruCache[V]) moveToFront(e *entry[V]) {
	if e == c.head {
		return
	}
	c.remove(e)
	c.addToFront(e)
}

func (c *lruCache[V]) addToFront(e *entry[V]) {
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

func (c *lruCache[V]) remove(e *entry[V]) {
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

func (c *lruCache[V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.entries, c.tail.key)
	c.remove(c.tail)
}
