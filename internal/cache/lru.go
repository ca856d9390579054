package cache

import (
	"sync"
	"time"
)

// ============================================================
// LRU 本地缓存实现（使用双向链表实现 O(1) 操作）
// ============================================================

// LRU is a bounded, concurrency-safe least-recently-used cache. A ttl of 0
// disables expiry. The lock is only held for map and list updates.
type LRU[K comparable, V any] struct {
	mu        sync.Mutex
	capacity  int
	ttl       time.Duration
	items     map[K]*lruNode[K, V]
	head      *lruNode[K, V] // 最近使用
	tail      *lruNode[K, V] // 最久未使用
	evictions uint64
	now       func() time.Time
}

type lruNode[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
	prev      *lruNode[K, V]
	next      *lruNode[K, V]
}

// NewLRU creates a cache holding at most capacity entries. A capacity below
// 1 is treated as 1.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[K]*lruNode[K, V], capacity),
		now:      time.Now,
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	node, ok := c.items[key]
	if !ok {
		return zero, false
	}

	// 检查过期
	if c.expired(node) {
		c.removeNode(node)
		delete(c.items, key)
		return zero, false
	}

	c.moveToHead(node)
	return node.value, true
}

// Set stores value under key, evicting the least recently used entry when full.
func (c *LRU[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key]; ok {
		node.value = value
		node.expiresAt = c.deadline()
		c.moveToHead(node)
		return
	}

	if len(c.items) >= c.capacity {
		c.evictTail()
	}

	node := &lruNode[K, V]{
		key:       key,
		value:     value,
		expiresAt: c.deadline(),
	}
	c.items[key] = node
	c.addToHead(node)
}

// Delete removes key.
func (c *LRU[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[key]; ok {
		c.removeNode(node)
		delete(c.items, key)
	}
}

// Clear drops every entry.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = make(map[K]*lruNode[K, V], c.capacity)
	c.head = nil
	c.tail = nil
}

// Len returns the number of stored entries, including expired ones not yet
// touched.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Stats 缓存统计
func (c *LRU[K, V]) Stats() (size, capacity int, evictions uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items), c.capacity, c.evictions
}

func (c *LRU[K, V]) deadline() time.Time {
	if c.ttl <= 0 {
		return time.Time{}
	}
	return c.now().Add(c.ttl)
}

func (c *LRU[K, V]) expired(node *lruNode[K, V]) bool {
	return !node.expiresAt.IsZero() && c.now().After(node.expiresAt)
}

// addToHead 添加节点到头部 O(1)
func (c *LRU[K, V]) addToHead(node *lruNode[K, V]) {
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

// removeNode 从链表中移除节点 O(1)
func (c *LRU[K, V]) removeNode(node *lruNode[K, V]) {
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
	node.prev, node.next = nil, nil
}

func (c *LRU[K, V]) moveToHead(node *lruNode[K, V]) {
	if node == c.head {
		return
	}
	c.removeNode(node)
	c.addToHead(node)
}

// evictTail 淘汰尾部节点 O(1)
func (c *LRU[K, V]) evictTail() {
	if c.tail == nil {
		return
	}
	delete(c.items, c.tail.key)
	c.removeNode(c.tail)
	c.evictions++
}
