package cache

// store holds the authoritative value for each live key.
// It knows nothing about ordering or capacity.
type store[K comparable, V any] struct {
	items map[K]V
}

func newStore[K comparable, V any](sizeHint int) *store[K, V] {
	return &store[K, V]{items: make(map[K]V, sizeHint)}
}

func (s *store[K, V]) upsert(key K, value V) {
	s.items[key] = value
}

func (s *store[K, V]) lookup(key K) (V, bool) {
	v, ok := s.items[key]
	return v, ok
}

// remove reports whether key was present.
func (s *store[K, V]) remove(key K) bool {
	if _, ok := s.items[key]; !ok {
		return false
	}
	delete(s.items, key)
	return true
}

func (s *store[K, V]) len() int {
	return len(s.items)
}
