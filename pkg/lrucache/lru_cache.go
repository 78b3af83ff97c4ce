package lrucache

import (
	"sync"
)

type cacheEntry[K comparable] struct {
	prev *cacheEntry[K]
	next *cacheEntry[K]
	key  K
}

// Cache tracks recency of keys. It does not own values, the caller decides
// what to do with a key once it is picked for eviction.
type Cache[K comparable] struct {
	entries map[K]*cacheEntry[K]
	head    *cacheEntry[K]
	tail    *cacheEntry[K]
	maxSize int
	mu      sync.RWMutex
}

// New creates a cache holding at most maxSize keys, 0 means unlimited.
func New[K comparable](maxSize int) *Cache[K] {
	return &Cache[K]{
		entries: make(map[K]*cacheEntry[K]),
		maxSize: maxSize,
	}
}

func (c *Cache[K]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[K]) Contains(key K) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Full returns true when adding another key would exceed the limit.
func (c *Cache[K]) Full() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxSize > 0 && len(c.entries) >= c.maxSize
}

// Touch marks key as most recently used, adding it if needed.
func (c *Cache[K]) Touch(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.moveToFront(entry)
		return
	}

	entry := &cacheEntry[K]{key: key}
	c.entries[key] = entry
	c.addToFront(entry)
}

func (c *Cache[K]) Remove(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return
	}
	c.unlink(entry)
	delete(c.entries, key)
}

// Victim returns the least recently used key for which keep returns false.
// The key stays tracked until Remove is called.
func (c *Cache[K]) Victim(keep func(K) bool) (K, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for entry := c.tail; entry != nil; entry = entry.prev {
		if keep != nil && keep(entry.key) {
			continue
		}
		return entry.key, true
	}

	var zero K
	return zero, false
}

// Keys returns keys from most to least recently used.
func (c *Cache[K]) Keys() []K {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]K, 0, len(c.entries))
	for entry := c.head; entry != nil; entry = entry.next {
		keys = append(keys, entry.key)
	}
	return keys
}

func (c *Cache[K]) moveToFront(entry *cacheEntry[K]) {
	if entry == c.head {
		return
	}
	c.unlink(entry)
	c.addToFront(entry)
}

func (c *Cache[K]) unlink(entry *cacheEntry[K]) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}
	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
	entry.prev = nil
	entry.next = nil
}

func (c *Cache[K]) addToFront(entry *cacheEntry[K]) {
	entry.next = c.head
	entry.prev = nil

	if c.head != nil {
		c.head.prev = entry
	}
	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}
