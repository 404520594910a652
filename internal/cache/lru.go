package cache

// LRU is a bounded key–value cache with least-recently-used eviction.
//
// Both Set and Get count as use. When a Set pushes the number of entries
// past the capacity, exactly one entry (the least recently used) is
// evicted before Set returns.
//
// LRU is not safe for concurrent use; wrap it in Synced or guard it with
// a single mutex.
type LRU[K comparable, V any] struct {
	capacity int
	store    *store[K, V]
	recency  *tracker[K]
}

// New returns an empty LRU holding at most capacity entries.
// It returns a *ConfigurationError if capacity <= 0.
func New[K comparable, V any](capacity int) (*LRU[K, V], error) {
	if err := validateCapacity(capacity); err != nil {
		return nil, err
	}
	// One extra slot: Set overflows by one before evicting.
	hint := capacity + 1
	return &LRU[K, V]{
		capacity: capacity,
		store:    newStore[K, V](hint),
		recency:  newTracker[K](hint),
	}, nil
}

// Set inserts or overwrites key and marks it most recently used.
//
// Complexity: O(1), including the eviction.
func (c *LRU[K, V]) Set(key K, value V) {
	c.set(key, value)
}

// set is Set that also reports the evicted key, if any.
func (c *LRU[K, V]) set(key K, value V) (evicted K, ok bool) {
	c.store.upsert(key, value)
	c.recency.touch(key)

	if c.store.len() <= c.capacity {
		return evicted, false
	}

	// A single Set adds at most one key, so one eviction restores the bound.
	evicted, ok = c.recency.evictTail()
	if ok {
		c.store.remove(evicted)
	}
	return evicted, ok
}

// Get returns the value for key and marks it most recently used.
// A miss has no side effects.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	v, ok := c.store.lookup(key)
	if !ok {
		return v, false
	}
	c.recency.touch(key)
	return v, true
}

// Contains reports whether key is cached without touching its recency.
func (c *LRU[K, V]) Contains(key K) bool {
	return c.recency.contains(key)
}

// Len returns the number of cached entries.
func (c *LRU[K, V]) Len() int {
	return c.store.len()
}

// Cap returns the capacity fixed at construction.
func (c *LRU[K, V]) Cap() int {
	return c.capacity
}

// Keys returns keys in MRU -> LRU order.
func (c *LRU[K, V]) Keys() []K {
	return c.recency.keys()
}
