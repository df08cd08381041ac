package serialization

import (
	"container/list"
	"sync"
)

type cacheKey struct {
	subject string
	schema  string
}

// flight is the singleflight key of the registration step for k. Register
// and Resolve both join it.
func (k cacheKey) flight() string {
	return "register/" + k.subject + "/" + k.schema
}

type cacheEntry struct {
	key cacheKey
	id  int
}

// idCache maps (subject, canonical schema) to registry IDs. Once full, the
// oldest insertion is evicted.
type idCache struct {
	mu       sync.RWMutex
	capacity int
	entries  map[cacheKey]*list.Element
	order    *list.List
}

func newIDCache(capacity int) *idCache {
	return &idCache{
		capacity: capacity,
		entries:  make(map[cacheKey]*list.Element),
		order:    list.New(),
	}
}

func (c *idCache) get(key cacheKey) (int, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	el, ok := c.entries[key]
	if !ok {
		return 0, false
	}
	return el.Value.(*cacheEntry).id, true
}

func (c *idCache) put(key cacheKey, id int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		el.Value.(*cacheEntry).id = id
		return
	}

	c.entries[key] = c.order.PushBack(&cacheEntry{key: key, id: id})
	for c.capacity > 0 && c.order.Len() > c.capacity {
		oldest := c.order.Front()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *idCache) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}
