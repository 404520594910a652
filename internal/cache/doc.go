// Package cache implements single-process, in-memory key–value caches.
//
// Contents of this package:
//   - LRU: a bounded cache with least-recently-used eviction
//   - Unbounded: a plain mapping with no eviction policy
//   - Synced: a mutex-guarded LRU with stats, read-through loading and
//     background reporting, for callers that share a cache across goroutines
//
// LRU and Unbounded are not safe for concurrent use. Get on an LRU
// promotes the key, so even reads need exclusive access.
package cache
