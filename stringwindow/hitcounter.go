package stringwindow

import "go.uber.org/atomic"

// HitCounter tallies StringCache.Lookup outcomes for one cache kind across
// a corpus: a hit count per window position, plus a miss bucket. Counters
// are atomic so the corpus driver can share one HitCounter per kind across
// files processed one at a time, or in parallel under its own lock
// discipline.
type HitCounter struct {
	windowSize int
	indexed    []atomic.Uint64
	misses     atomic.Uint64
}

// NewHitCounter returns a HitCounter sized for the given window.
func NewHitCounter(windowSize int) *HitCounter {
	return &HitCounter{windowSize: windowSize, indexed: make([]atomic.Uint64, windowSize)}
}

// Observe records the outcome of one StringCache.Lookup call: pos is the
// clamped position for a hit, or -1 for a miss.
func (c *HitCounter) Observe(pos int64) {
	if pos < 0 {
		c.misses.Inc()
		return
	}
	if int(pos) < len(c.indexed) {
		c.indexed[pos].Inc()
	}
}

// Hits returns the total number of recorded hits (sum of the indexed
// buckets).
func (c *HitCounter) Hits() uint64 {
	var sum uint64
	for i := range c.indexed {
		sum += c.indexed[i].Load()
	}
	return sum
}

// Misses returns the recorded miss count.
func (c *HitCounter) Misses() uint64 { return c.misses.Load() }

// Total returns Hits()+Misses().
func (c *HitCounter) Total() uint64 { return c.Hits() + c.Misses() }

// Summary is the serializable corpus summary for window size S: S indexed
// counts, then MISSES, HITS, TOTAL, plus the derived probability
// (count / (hits+misses)) of each indexed row and of the miss row.
type Summary struct {
	WindowSize int      `json:"windowSize"`
	Indexed    []uint64 `json:"indexed"`
	Misses     uint64   `json:"misses"`
	Hits       uint64   `json:"hits"`
	Total      uint64   `json:"total"`
	Probs      []float64 `json:"probs"` // len == windowSize+1 (indexed..., miss), parallel to Indexed+Misses
}

// Snapshot builds a Summary from the counter's current state.
func (c *HitCounter) Snapshot() Summary {
	hits := c.Hits()
	misses := c.Misses()
	total := hits + misses
	indexed := make([]uint64, len(c.indexed))
	probs := make([]float64, len(c.indexed)+1)
	for i := range c.indexed {
		indexed[i] = c.indexed[i].Load()
		if total > 0 {
			probs[i] = float64(indexed[i]) / float64(total)
		}
	}
	if total > 0 {
		probs[len(probs)-1] = float64(misses) / float64(total)
	}
	return Summary{
		WindowSize: c.windowSize,
		Indexed:    indexed,
		Misses:     misses,
		Hits:       hits,
		Total:      total,
		Probs:      probs,
	}
}
