package entropy

import "fmt"

// Comparison carries externally-computed sizes for one file, supplied by
// the caller from comparison tooling this package never invokes itself:
// gzip and brotli are out-of-scope collaborators per the external
// interfaces design, consumed here only as reported byte counts.
type Comparison struct {
	GzipBytes   int
	BrotliBytes int
}

// Summary is the human-readable per-file report: the BinAST size before
// and after the literal table is folded in, the two external comparison
// sizes and their ratios against the final BinAST size, and the
// per-category bit/symbol breakdown from a Coder's counters.
type Summary struct {
	BinASTBytes      int // symbol stream only, before the literal table
	TotalBytes       int // BinASTBytes + literal table size
	Comparison       Comparison
	CategoryBits     map[string]float64
	CategorySymbols  map[string]uint64
	CategoryOrder    []string
}

// BuildSummary assembles a Summary from a finished Coder's state and an
// externally-supplied Comparison.
func BuildSummary(c *Coder, cmp Comparison) (Summary, error) {
	total, err := c.EstimatedSize()
	if err != nil {
		return Summary{}, err
	}
	keys := c.counters.Keys()
	bits := make(map[string]float64, len(keys))
	syms := make(map[string]uint64, len(keys))
	for _, k := range keys {
		bits[k] = c.counters.Bits(k)
		syms[k] = c.counters.Symbols(k)
	}
	return Summary{
		BinASTBytes:     c.counters.TotalBytes(),
		TotalBytes:      total,
		Comparison:      cmp,
		CategoryBits:    bits,
		CategorySymbols: syms,
		CategoryOrder:   keys,
	}, nil
}

func ratio(numer, denom int) float64 {
	if denom == 0 {
		return 0
	}
	return float64(numer) / float64(denom)
}

// String renders the exact summary line format named in the external
// interfaces design, followed by one indented line per bit-accounting
// category.
func (s Summary) String() string {
	out := fmt.Sprintf("BinAST=%d --> %d  gzip=%d // %.3f  brotli=%d // %.3f",
		s.BinASTBytes, s.TotalBytes,
		s.Comparison.GzipBytes, ratio(s.Comparison.GzipBytes, s.TotalBytes),
		s.Comparison.BrotliBytes, ratio(s.Comparison.BrotliBytes, s.TotalBytes),
	)
	for _, k := range s.CategoryOrder {
		out += fmt.Sprintf("\n  %-28s %10.1f bits  %6d syms", k, s.CategoryBits[k], s.CategorySymbols[k])
	}
	return out
}
