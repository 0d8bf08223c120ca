package cache

import (
	"math/rand/v2"
	"sync"
)

// MemoryCache is a bounded in-memory Cache.
// When a new key is inserted at capacity, one existing key chosen uniformly
// at random is evicted first. Updating a present key never evicts.
// A maxElements of 0 disables the bound.
type MemoryCache[V any] struct {
	mu          sync.Mutex
	maxElements int
	data        map[string]V
	// keys mirrors data's key set so an eviction target can be drawn in O(1).
	keys  []string
	index map[string]int
	intN  func(n int) int
}

type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	intN func(n int) int
}

// WithRand makes eviction draw from r instead of the global source.
func WithRand(r *rand.Rand) MemoryOption {
	return func(o *memoryOptions) {
		o.intN = r.IntN
	}
}

func NewMemoryCache[V any](maxElements int, opts ...MemoryOption) *MemoryCache[V] {
	o := memoryOptions{intN: rand.IntN}
	for _, opt := range opts {
		opt(&o)
	}
	if maxElements < 0 {
		maxElements = 0
	}
	return &MemoryCache[V]{
		maxElements: maxElements,
		data:        make(map[string]V),
		index:       make(map[string]int),
		intN:        o.intN,
	}
}

func (c *MemoryCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	value, exists := c.data[key]
	return value, exists
}

func (c *MemoryCache[V]) Put(key string, value V) (V, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.data[key]; exists {
		c.data[key] = value
		return value, nil
	}
	if c.maxElements > 0 && len(c.keys) >= c.maxElements {
		c.evict(c.keys[c.intN(len(c.keys))])
	}
	c.index[key] = len(c.keys)
	c.keys = append(c.keys, key)
	c.data[key] = value
	return value, nil
}

func (c *MemoryCache[V]) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]V)
	c.index = make(map[string]int)
	c.keys = nil
	return nil
}

// Size returns the number of entries in the cache.
func (c *MemoryCache[V]) Size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.keys)
}

// evict removes key by swapping it with the last slot. Caller holds mu.
func (c *MemoryCache[V]) evict(key string) {
	i := c.index[key]
	last := len(c.keys) - 1
	c.keys[i] = c.keys[last]
	c.index[c.keys[i]] = i
	c.keys = c.keys[:last]
	delete(c.index, key)
	delete(c.data, key)
}
