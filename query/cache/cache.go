// Package cache provides an LRU cache for compiled query artifacts.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// Cache stores compiled artifacts by key.
type Cache[V any] interface {
	// Get retrieves a value from the cache
	Get(key string) (V, bool)
	// Set stores a value with an optional TTL; zero uses the default TTL
	Set(key string, value V, ttl time.Duration)
	// Invalidate removes a specific key
	Invalidate(key string)
	// InvalidatePattern removes all keys matching a pattern (e.g. "condition:*")
	InvalidatePattern(pattern string)
	// Clear removes all entries
	Clear()
	// GetStats returns cache statistics
	GetStats() Stats
}

// Stats represents cache statistics
type Stats struct {
	Hits      int64
	Misses    int64
	Size      int
	MaxSize   int
	Evictions int64
	HitRate   float64
}

// LRUCache implements an LRU cache with TTL support
type LRUCache[V any] struct {
	mu         sync.Mutex
	data       map[string]*cacheNode[V]
	maxSize    int
	defaultTTL time.Duration
	head       *cacheNode[V]
	tail       *cacheNode[V]
	stats      Stats
	now        func() time.Time
}

// cacheNode is a node in the doubly-linked recency list
type cacheNode[V any] struct {
	key       string
	value     V
	expiresAt time.Time
	prev      *cacheNode[V]
	next      *cacheNode[V]
}

// NewLRUCache creates a cache holding at most maxSize entries.
func NewLRUCache[V any](maxSize int, defaultTTL time.Duration) *LRUCache[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &LRUCache[V]{
		data:       make(map[string]*cacheNode[V]),
		maxSize:    maxSize,
		defaultTTL: defaultTTL,
		stats:      Stats{MaxSize: maxSize},
		now:        time.Now,
	}
}

// Get retrieves a value from the cache
func (c *LRUCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	node, ok := c.data[key]
	if !ok {
		c.stats.Misses++
		return zero, false
	}

	if !node.expiresAt.IsZero() && c.now().After(node.expiresAt) {
		c.removeNode(node)
		c.stats.Misses++
		return zero, false
	}

	c.moveToFront(node)
	c.stats.Hits++
	return node.value, true
}

// Set stores a value in the cache
func (c *LRUCache[V]) Set(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl == 0 {
		ttl = c.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = c.now().Add(ttl)
	}

	if node, exists := c.data[key]; exists {
		node.value = value
		node.expiresAt = expiresAt
		c.moveToFront(node)
		return
	}

	if len(c.data) >= c.maxSize {
		c.evictLRU()
		c.stats.Evictions++
	}

	node := &cacheNode[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(node)
	c.data[key] = node
}

// Invalidate removes a specific key from the cache
func (c *LRUCache[V]) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.data[key]; ok {
		c.removeNode(node)
	}
}

// InvalidatePattern removes all keys matching a pattern
// Pattern format: "prefix:*" or "*:suffix" or "*"
func (c *LRUCache[V]) InvalidatePattern(pattern string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, node := range c.data {
		if matchesPattern(key, pattern) {
			c.removeNode(node)
		}
	}
}

// Clear removes all entries and resets statistics
func (c *LRUCache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]*cacheNode[V])
	c.head = nil
	c.tail = nil
	c.stats = Stats{MaxSize: c.maxSize}
}

// GetStats returns cache statistics
func (c *LRUCache[V]) GetStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := c.stats
	stats.Size = len(c.data)
	if total := stats.Hits + stats.Misses; total > 0 {
		stats.HitRate = float64(stats.Hits) / float64(total) * 100
	}
	return stats
}

func (c *LRUCache[V]) addToFront(node *cacheNode[V]) {
	node.prev = nil
	node.next = c.head
	if c.head != nil {
		c.head.prev = node
	}
	c.head = node
	if c.tail == nil {
		c.tail = node
	}
}

func (c *LRUCache[V]) moveToFront(node *cacheNode[V]) {
	if node == c.head {
		return
	}
	c.unlink(node)
	c.addToFront(node)
}

// unlink detaches a node from the list without touching the map
func (c *LRUCache[V]) unlink(node *cacheNode[V]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		c.head = node.next
	}
	if node.next != nil {
		node.next.prev = node.prev
	} else {
		c.tail = node.prev
	}
	node.prev = nil
	node.next = nil
}

func (c *LRUCache[V]) removeNode(node *cacheNode[V]) {
	c.unlink(node)
	delete(c.data, node.key)
}

func (c *LRUCache[V]) evictLRU() {
	if c.tail != nil {
		c.removeNode(c.tail)
	}
}

// matchesPattern checks if a key matches a pattern
func matchesPattern(key, pattern string) bool {
	if pattern == "*" {
		return true
	}

	parts := strings.Split(pattern, ":")
	keyParts := strings.Split(key, ":")
	if len(parts) != len(keyParts) {
		return false
	}
	for i, part := range parts {
		if part != "*" && part != keyParts[i] {
			return false
		}
	}
	return true
}

// Key builds a "kind:hash" cache key. The hash keeps arbitrary input text
// (which may contain ':') out of the pattern syntax.
func Key(kind string, input string) string {
	sum := sha256.Sum256([]byte(input))
	return kind + ":" + hex.EncodeToString(sum[:])[:16]
}
