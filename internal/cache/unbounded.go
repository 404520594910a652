package cache

// Unbounded is a key–value cache with no capacity and no eviction.
// Entries stay until the Unbounded is dropped.
type Unbounded[K comparable, V any] struct {
	store *store[K, V]
}

// NewUnbounded returns an empty Unbounded cache.
func NewUnbounded[K comparable, V any]() *Unbounded[K, V] {
	return &Unbounded[K, V]{store: newStore[K, V](0)}
}

// Set inserts or overwrites key. It always reports true.
func (u *Unbounded[K, V]) Set(key K, value V) bool {
	u.store.upsert(key, value)
	return true
}

// Get returns the value stored for key.
func (u *Unbounded[K, V]) Get(key K) (V, bool) {
	return u.store.lookup(key)
}

// Len returns the number of stored entries.
func (u *Unbounded[K, V]) Len() int {
	return u.store.len()
}
