package cache

import (
	"container/list"
	"sync"
	"time"

	"github.com/doeshing/jarvis-go/internal/domain"
	"github.com/doeshing/jarvis-go/internal/ports"
)

// MemoCache keeps recent classifier results in memory, addressed by exact command text.
type MemoCache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	order      *list.List
	items      map[string]*list.Element
	now        func() time.Time
}

type memoEntry struct {
	key       string
	record    domain.IntentRecord
	createdAt time.Time
}

// NewMemoCache returns a cache holding at most maxEntries results.
// A zero ttl keeps entries until they are evicted.
func NewMemoCache(maxEntries int, ttl time.Duration) *MemoCache {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultClassifierCacheSize
	}
	return &MemoCache{
		maxEntries: maxEntries,
		ttl:        ttl,
		order:      list.New(),
		items:      make(map[string]*list.Element),
		now:        time.Now,
	}
}

// Get retrieves a cached record and marks it most recently used.
func (c *MemoCache) Get(key string) (domain.IntentRecord, bool) {
	if key == "" {
		return domain.IntentRecord{}, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	elem, ok := c.items[key]
	if !ok {
		return domain.IntentRecord{}, false
	}
	entry := elem.Value.(*memoEntry)
	if c.ttl > 0 && c.now().Sub(entry.createdAt) > c.ttl {
		c.removeElement(elem)
		return domain.IntentRecord{}, false
	}
	c.order.MoveToFront(elem)
	return entry.record, true
}

// Set stores a record, evicting the least recently used entry when full.
func (c *MemoCache) Set(key string, record domain.IntentRecord) {
	if key == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if elem, ok := c.items[key]; ok {
		entry := elem.Value.(*memoEntry)
		entry.record = record
		entry.createdAt = c.now()
		c.order.MoveToFront(elem)
		return
	}
	c.items[key] = c.order.PushFront(&memoEntry{key: key, record: record, createdAt: c.now()})
	c.evictIfNeeded()
}

// Len reports the number of cached entries.
func (c *MemoCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all cached entries.
func (c *MemoCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.items = make(map[string]*list.Element)
}

func (c *MemoCache) evictIfNeeded() {
	for c.order.Len() > c.maxEntries {
		c.removeElement(c.order.Back())
	}
}

func (c *MemoCache) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*memoEntry).key)
}

var _ ports.ClassificationCache = (*MemoCache)(nil)
