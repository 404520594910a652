package cache

import "time"

// reportLoop periodically logs a stats snapshot until Close.
//
// Counters are cumulative; the delta fields cover the last interval.
func (c *Synced[K, V]) reportLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(c.reportEvery)
	defer ticker.Stop()

	var last Stats
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			s := c.statsLocked()
			c.mu.Unlock()

			c.log.Info("cache stats",
				"len", s.Len,
				"capacity", s.Capacity,
				"hits", s.Hits,
				"misses", s.Misses,
				"evictions", s.Evictions,
				"hit_ratio", s.HitRatio(),
				"interval_sets", s.Sets-last.Sets,
				"interval_evictions", s.Evictions-last.Evictions,
			)
			last = s
		}
	}
}
