package entropy

import "math"

// BitCounters accumulates per-category bit and symbol counts during a
// single file's coding pass. Every emission is charged under three nested
// keys at once: "sym", "sym/<cat>", and "sym/<cat>/<tyStr>", so a summary
// can report totals at any granularity without a second pass over the
// trace.
type BitCounters struct {
	bits  map[string]float64
	syms  map[string]uint64
	order []string
}

// NewBitCounters returns an empty counter set.
func NewBitCounters() *BitCounters {
	return &BitCounters{bits: make(map[string]float64), syms: make(map[string]uint64)}
}

func (c *BitCounters) bump(key string, bits float64) {
	if _, ok := c.bits[key]; !ok {
		c.order = append(c.order, key)
	}
	c.bits[key] += bits
	c.syms[key]++
}

// Charge records one emitted symbol costing bits, under "sym", "sym/cat",
// and "sym/cat/tyStr" (tyStr may be empty, in which case only the first two
// keys are charged).
func (c *BitCounters) Charge(cat, tyStr string, bits float64) {
	c.bump("sym", bits)
	c.bump("sym/"+cat, bits)
	if tyStr != "" {
		c.bump("sym/"+cat+"/"+tyStr, bits)
	}
}

// Bits returns the accumulated bit count for key ("sym", "sym/<cat>", or
// "sym/<cat>/<tyStr>"), 0 if never charged.
func (c *BitCounters) Bits(key string) float64 { return c.bits[key] }

// Symbols returns the number of emissions charged under key.
func (c *BitCounters) Symbols(key string) uint64 { return c.syms[key] }

// Keys returns every category key that received at least one charge, in
// first-charged order.
func (c *BitCounters) Keys() []string { return append([]string(nil), c.order...) }

// TotalBytes returns ceil(bits emitted under "sym" / 8), the symbol
// stream's size estimate before the literal string table is added.
func (c *BitCounters) TotalBytes() int {
	return int(math.Ceil(c.bits["sym"] / 8))
}
