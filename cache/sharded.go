package cache

import (
	"sync"
	"sync/atomic"
)

const (
	// DefaultShardCount is the number of shards. Must be a power of 2.
	DefaultShardCount = 16

	// DefaultCapacity is the default maximum entries per shard.
	DefaultCapacity = 256

	shardMask = DefaultShardCount - 1
)

// Hasher computes the shard-selection hash of a key.
type Hasher[K any] func(K) uint64

// ShardedCache is a bounded LRU map split across DefaultShardCount shards.
// Each shard has its own lock and evicts independently.
//
// ShardedCache is safe for concurrent use.
type ShardedCache[K comparable, V any] struct {
	shards   [DefaultShardCount]shard[K, V]
	hasher   Hasher[K]
	capacity int

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type shard[K comparable, V any] struct {
	mu    sync.Mutex
	items map[K]*lruNode[K]
	vals  map[K]V
	order *lruList[K]
}

// NewSharded creates a cache holding up to perShard entries in each shard.
// perShard <= 0 selects DefaultCapacity.
func NewSharded[K comparable, V any](perShard int, hasher Hasher[K]) *ShardedCache[K, V] {
	if perShard <= 0 {
		perShard = DefaultCapacity
	}
	c := &ShardedCache[K, V]{hasher: hasher, capacity: perShard}
	for i := range c.shards {
		c.shards[i].items = make(map[K]*lruNode[K])
		c.shards[i].vals = make(map[K]V)
		c.shards[i].order = newLRUList[K]()
	}
	return c
}

func (c *ShardedCache[K, V]) shard(key K) *shard[K, V] {
	return &c.shards[c.hasher(key)&shardMask]
}

// Get returns the value for key and marks it most recently used.
func (c *ShardedCache[K, V]) Get(key K) (V, bool) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.items[key]
	if !ok {
		c.misses.Add(1)
		var zero V
		return zero, false
	}
	s.order.MoveToFront(node)
	c.hits.Add(1)
	return s.vals[key], true
}

// Set stores value under key. A full shard drops its least recently used
// entry first.
func (c *ShardedCache[K, V]) Set(key K, value V) {
	s := c.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if node, ok := s.items[key]; ok {
		s.vals[key] = value
		s.order.MoveToFront(node)
		return
	}
	for s.order.Len() >= c.capacity {
		oldest, ok := s.order.RemoveOldest()
		if !ok {
			break
		}
		delete(s.items, oldest)
		delete(s.vals, oldest)
		c.evictions.Add(1)
	}
	s.items[key] = s.order.PushFront(key)
	s.vals[key] = value
}

// Clear drops every entry. Counters are kept.
func (c *ShardedCache[K, V]) Clear() {
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		clear(s.items)
		clear(s.vals)
		s.order.Clear()
		s.mu.Unlock()
	}
}

// Len returns the number of entries across all shards.
func (c *ShardedCache[K, V]) Len() int {
	n := 0
	for i := range c.shards {
		s := &c.shards[i]
		s.mu.Lock()
		n += len(s.items)
		s.mu.Unlock()
	}
	return n
}

// Stats returns a snapshot of the counters.
func (c *ShardedCache[K, V]) Stats() Stats {
	hits, misses := c.hits.Load(), c.misses.Load()
	st := Stats{
		Len:       c.Len(),
		Capacity:  c.capacity * DefaultShardCount,
		Hits:      hits,
		Misses:    misses,
		Evictions: c.evictions.Load(),
	}
	if total := hits + misses; total > 0 {
		st.HitRate = float64(hits) / float64(total)
	}
	return st
}
