package cache

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/hashicorp/golang-lru/v2/simplelru"
)

// TestLRU_MatchesReferenceImplementation replays the same workload
// through LRU and hashicorp's simplelru and expects identical hits,
// values and recency order.
func TestLRU_MatchesReferenceImplementation(t *testing.T) {
	t.Parallel()

	const capacity = 64

	c, err := New[int, int](capacity)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ref, err := simplelru.NewLRU[int, int](capacity, nil)
	if err != nil {
		t.Fatalf("reference: %v", err)
	}

	rng := rand.New(rand.NewSource(42))
	zipf := rand.NewZipf(rng, 1.1, 1, 1023)

	for i := 0; i < 20000; i++ {
		key := int(zipf.Uint64())

		got, ok := c.Get(key)
		want, refOK := ref.Get(key)
		if ok != refOK || got != want {
			t.Fatalf("op %d: get %d = (%d, %v), reference (%d, %v)", i, key, got, ok, want, refOK)
		}
		if !ok {
			c.Set(key, i)
			ref.Add(key, i)
		}
	}

	// simplelru lists keys oldest first.
	refKeys := ref.Keys()
	slices.Reverse(refKeys)
	if !slices.Equal(c.Keys(), refKeys) {
		t.Fatalf("recency order diverged from reference")
	}
}
