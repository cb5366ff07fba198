package table

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/couchcryptid/table-facts/internal/domain"
)

type rowLoader interface {
	Load(ctx context.Context, src domain.Source) ([]domain.RawRow, error)
}

// CachedLoader wraps a loader with an in-memory LRU cache keyed by source.
// A cached table is reused only while the file's size and modification time
// are unchanged. Returned rows are shared between callers and must not be
// modified.
type CachedLoader struct {
	inner rowLoader
	cache *lruCache
}

// NewCachedLoader creates a cache decorator around a loader.
func NewCachedLoader(inner rowLoader, maxEntries int) *CachedLoader {
	return &CachedLoader{
		inner: inner,
		cache: newLRUCache(maxEntries),
	}
}

func (c *CachedLoader) Load(ctx context.Context, src domain.Source) ([]domain.RawRow, error) {
	info, err := os.Stat(src.Path)
	if err != nil {
		// The inner loader classifies the failure.
		return c.inner.Load(ctx, src)
	}

	key := fmt.Sprintf("%s|%q", src.Path, src.Delimiter)
	if t, ok := c.cache.get(key); ok && t.size == info.Size() && t.modTime.Equal(info.ModTime()) {
		return t.rows, nil
	}

	rows, err := c.inner.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	// Empty tables are not cached so a file still being written gets re-read.
	if len(rows) > 0 {
		c.cache.put(key, cachedTable{rows: rows, size: info.Size(), modTime: info.ModTime()})
	}
	return rows, nil
}

type cachedTable struct {
	rows    []domain.RawRow
	size    int64
	modTime time.Time
}

// lruCache is a simple thread-safe LRU cache for loaded tables.
type lruCache struct {
	maxEntries int
	mu         sync.Mutex
	entries    map[string]*entry
	head       *entry // most recently used
	tail       *entry // least recently used
}

type entry struct {
	key   string
	value cachedTable
	prev  *entry
	next  *entry
}

func newLRUCache(maxEntries int) *lruCache {
	return &lruCache{
		maxEntries: maxEntries,
		entries:    make(map[string]*entry),
	}
}

func (c *lruCache) get(key string) (cachedTable, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return cachedTable{}, false
	}
	c.moveToFront(e)
	return e.value, true
}

func (c *lruCache) put(key string, value cachedTable) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		c.moveToFront(e)
		return
	}

	e := &entry{key: key, value: value}
	c.entries[key] = e
	c.addToFront(e)

	if len(c.entries) > c.maxEntries {
		c.evictTail()
	}
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
