package cache

// nilIndex terminates the list in both directions.
const nilIndex = -1

// node is one slot of the tracker arena. prev points towards the head
// (more recent), next towards the tail (less recent).
type node[K comparable] struct {
	key  K
	prev int
	next int
}

// tracker maintains the recency order over the live key set.
//
// Nodes live in a slice and link to each other by index, so touch and
// evictTail are O(1) and no per-entry allocation happens once the arena
// has grown to capacity. Slots released by evictTail are reused through
// the free list.
type tracker[K comparable] struct {
	nodes []node[K]
	index map[K]int
	free  []int
	head  int // most recently used
	tail  int // least recently used
}

func newTracker[K comparable](sizeHint int) *tracker[K] {
	return &tracker[K]{
		nodes: make([]node[K], 0, sizeHint),
		index: make(map[K]int, sizeHint),
		head:  nilIndex,
		tail:  nilIndex,
	}
}

// touch makes key the most recently used, inserting it if needed.
func (t *tracker[K]) touch(key K) {
	if i, ok := t.index[key]; ok {
		if i == t.head {
			return
		}
		t.unlink(i)
		t.pushFront(i)
		return
	}

	i := t.alloc(key)
	t.index[key] = i
	t.pushFront(i)
}

// evictTail removes and returns the least recently used key.
func (t *tracker[K]) evictTail() (K, bool) {
	var zero K
	if t.tail == nilIndex {
		return zero, false
	}

	i := t.tail
	key := t.nodes[i].key
	t.unlink(i)
	delete(t.index, key)

	// Drop the key so the arena does not pin it.
	t.nodes[i].key = zero
	t.free = append(t.free, i)
	return key, true
}

func (t *tracker[K]) contains(key K) bool {
	_, ok := t.index[key]
	return ok
}

func (t *tracker[K]) len() int {
	return len(t.index)
}

// keys returns the tracked keys from head (MRU) to tail (LRU).
func (t *tracker[K]) keys() []K {
	out := make([]K, 0, len(t.index))
	for i := t.head; i != nilIndex; i = t.nodes[i].next {
		out = append(out, t.nodes[i].key)
	}
	return out
}

func (t *tracker[K]) alloc(key K) int {
	if n := len(t.free); n > 0 {
		i := t.free[n-1]
		t.free = t.free[:n-1]
		t.nodes[i] = node[K]{key: key, prev: nilIndex, next: nilIndex}
		return i
	}
	t.nodes = append(t.nodes, node[K]{key: key, prev: nilIndex, next: nilIndex})
	return len(t.nodes) - 1
}

func (t *tracker[K]) unlink(i int) {
	n := &t.nodes[i]
	if n.prev != nilIndex {
		t.nodes[n.prev].next = n.next
	} else {
		t.head = n.next
	}
	if n.next != nilIndex {
		t.nodes[n.next].prev = n.prev
	} else {
		t.tail = n.prev
	}
	n.prev, n.next = nilIndex, nilIndex
}

func (t *tracker[K]) pushFront(i int) {
	t.nodes[i].prev = nilIndex
	t.nodes[i].next = t.head
	if t.head != nilIndex {
		t.nodes[t.head].prev = i
	}
	t.head = i
	if t.tail == nilIndex {
		t.tail = i
	}
}
