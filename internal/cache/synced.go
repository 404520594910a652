package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a single GetOrLoad fetch when SyncedConfig
// leaves LoadTimeout unset.
const DefaultLoadTimeout = 30 * time.Second

// SyncedConfig controls capacity and maintenance behavior of a Synced cache.
//
//   - Capacity must be > 0
//   - ReportInterval <= 0 disables the background stats reporter
//   - LoadTimeout <= 0 means DefaultLoadTimeout
type SyncedConfig struct {
	Capacity       int
	ReportInterval time.Duration
	LoadTimeout    time.Duration
	Logger         *slog.Logger
	Recorder       Recorder
}

// Recorder receives one call per cache event. Implementations must be
// safe for concurrent use.
type Recorder interface {
	RecordHit()
	RecordMiss()
	RecordSet()
	RecordEviction()
}

type nopRecorder struct{}

func (nopRecorder) RecordHit()      {}
func (nopRecorder) RecordMiss()     {}
func (nopRecorder) RecordSet()      {}
func (nopRecorder) RecordEviction() {}

// Stats is a point-in-time view of a Synced cache.
type Stats struct {
	Hits      uint64 `json:"hits"`
	Misses    uint64 `json:"misses"`
	Sets      uint64 `json:"sets"`
	Evictions uint64 `json:"evictions"`
	Len       int    `json:"len"`
	Capacity  int    `json:"capacity"`
}

// HitRatio returns hits / (hits + misses), or 0 before the first lookup.
func (s Stats) HitRatio() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0
	}
	return float64(s.Hits) / float64(total)
}

// LoadFunc fetches the value for a key that missed the cache.
type LoadFunc[V any] func(ctx context.Context) (V, error)

// Synced is a concurrency-safe LRU cache.
//
// Every operation holds one mutex for its whole duration, so the
// LRU invariants hold at every point another goroutine can observe.
// Get takes the same exclusive lock as Set because a hit reorders recency.
//
// Ownership model:
// Synced owns its internal goroutines. Call Close to stop them.
type Synced[K comparable, V any] struct {
	mu  sync.Mutex
	lru *LRU[K, V]

	stats Stats
	loads singleflight.Group

	loadTimeout time.Duration
	log         *slog.Logger
	rec         Recorder

	// Goroutine ownership.
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	reportEvery time.Duration
	closed      bool
}

// NewSynced constructs a Synced cache and starts the stats reporter
// (if enabled). It returns a *ConfigurationError if cfg.Capacity <= 0.
func NewSynced[K comparable, V any](cfg SyncedConfig) (*Synced[K, V], error) {
	lru, err := New[K, V](cfg.Capacity)
	if err != nil {
		return nil, err
	}

	log := cfg.Logger
	if log == nil {
		log = slog.Default().With("component", "cache")
	}
	rec := cfg.Recorder
	if rec == nil {
		rec = nopRecorder{}
	}
	loadTimeout := cfg.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}

	ctx, cancel := context.WithCancel(context.Background())

	c := &Synced[K, V]{
		lru:         lru,
		stats:       Stats{Capacity: cfg.Capacity},
		loadTimeout: loadTimeout,
		log:         log,
		rec:         rec,
		ctx:         ctx,
		cancel:      cancel,
		reportEvery: cfg.ReportInterval,
	}

	if c.reportEvery > 0 {
		c.wg.Add(1)
		go c.reportLoop()
	}

	return c, nil
}

// Close stops background goroutines and prevents further mutation.
//
// Close is safe to call multiple times.
func (c *Synced[K, V]) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	cancel := c.cancel
	c.mu.Unlock()

	// Cancel outside the lock; the reporter takes the lock on each tick.
	cancel()
	c.wg.Wait()
	return nil
}

// Set writes or overwrites key and marks it most recently used.
// It returns ErrClosed after Close.
func (c *Synced[K, V]) Set(key K, value V) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClosed
	}

	evicted, ok := c.lru.set(key, value)
	c.stats.Sets++
	c.rec.RecordSet()
	if ok {
		c.stats.Evictions++
		c.rec.RecordEviction()
		c.log.Debug("evicted least recently used entry", "key", evicted)
	}
	return nil
}

// Get reads key. A hit marks key most recently used.
func (c *Synced[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.lru.Get(key)
	if ok {
		c.stats.Hits++
		c.rec.RecordHit()
	} else {
		c.stats.Misses++
		c.rec.RecordMiss()
	}
	return v, ok
}

// GetOrLoad returns the cached value for key, or calls load on a miss and
// caches its result. Concurrent misses for the same key share a single
// load. Loads are keyed by the Go-syntax (%#v) form of key, which keeps
// distinct keys with the same plain printed form apart.
//
// The load runs on a context detached from ctx's cancellation and bounded
// by the configured load timeout, so one caller giving up does not fail
// the others waiting on the same key. Failed loads are not cached.
func (c *Synced[K, V]) GetOrLoad(ctx context.Context, key K, load LoadFunc[V]) (V, error) {
	if v, ok := c.Get(key); ok {
		return v, nil
	}

	res, err, _ := c.loads.Do(flightKey(key), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		v, err := load(loadCtx)
		if err != nil {
			return nil, err
		}
		if err := c.Set(key, v); err != nil {
			return nil, err
		}
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, fmt.Errorf("load %v: %w", key, err)
	}

	v, _ := res.(V)
	return v, nil
}

// flightKey names the singleflight call for key. %#v quotes strings and
// carries the type, so [2]string{"a b", ""} and [2]string{"a", "b "} differ.
func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%#v", key)
}

// Contains reports whether key is cached without touching its recency
// or the hit/miss counters.
func (c *Synced[K, V]) Contains(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Contains(key)
}

// Len returns the number of cached entries.
func (c *Synced[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Cap returns the configured capacity.
func (c *Synced[K, V]) Cap() int {
	return c.lru.Cap()
}

// Keys returns keys in MRU -> LRU order.
func (c *Synced[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Keys()
}

// Stats returns a snapshot of the counters and current size.
func (c *Synced[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.statsLocked()
}

func (c *Synced[K, V]) statsLocked() Stats {
	s := c.stats
	s.Len = c.lru.Len()
	return s
}
