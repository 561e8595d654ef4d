// Package stringwindow implements the move-to-front String Window model:
// per-kind (identifier, property, raw) bounded caches with hit/miss
// tracking, plus the global string dictionary used for cache-miss fallback.
package stringwindow

// StringCache is a bounded move-to-front list. Its logical window has
// `limit` slots (0..limit-1), the range a caller-visible lookup position
// can fall in; the backing storage is allowed to grow to 2*limit before
// being compacted back down to limit, so a string doesn't need to be
// physically shifted on every miss just because it briefly fell past the
// logical window. A hit beyond position limit-1 still reports a clamped
// position (limit-1) rather than its true depth, and is always promoted to
// the true front on hit.
type StringCache struct {
	limit   int
	backing []string
}

// NewStringCache returns an empty cache with the given window size.
func NewStringCache(limit int) *StringCache {
	if limit <= 0 {
		panic("stringwindow: limit must be positive")
	}
	return &StringCache{limit: limit}
}

// Limit returns the cache's logical window size.
func (c *StringCache) Limit() int { return c.limit }

// Lookup returns the 0-based clamped position of str if present (moving it
// to the front), or -1 on a miss (inserting it at the front and
// compacting the backing storage back to limit once it exceeds 2*limit).
func (c *StringCache) Lookup(str string) int64 {
	for i, s := range c.backing {
		if s == str {
			c.moveToFront(i)
			pos := i
			if pos > c.limit-1 {
				pos = c.limit - 1
			}
			return int64(pos)
		}
	}
	c.backing = append([]string{str}, c.backing...)
	if len(c.backing) > 2*c.limit {
		c.backing = c.backing[:c.limit]
	}
	return -1
}

func (c *StringCache) moveToFront(i int) {
	s := c.backing[i]
	copy(c.backing[1:i+1], c.backing[:i])
	c.backing[0] = s
}
