package pathmodel

import (
	"fmt"
	"math"

	"go.uber.org/atomic"
)

// ProbTotal is the fixed total that a ProbTable's cumulative counts are
// scaled to: 2^18, matching the bit-budget the entropy coder assumes when
// converting a symbol's (offset, size, total) into log2(total/size) bits.
const ProbTotal = 1 << 18

// FreqTable accumulates raw per-symbol hit counts for one (path, tag)
// context. Counters are atomic so a corpus driver that processes files in
// parallel can share one FreqTable per context under nothing stronger than
// the atomic increment itself (see package corpus for the serialization
// discipline this assumes).
type FreqTable struct {
	// Names is nil for a "numbered" alphabet (symbols are just their
	// index), or the ordered list of symbol names for a named alphabet.
	Names []string

	counts []atomic.Uint64
}

// NewFreqTable returns a FreqTable over an alphabet of the given size. If
// names is non-nil its length must equal size.
func NewFreqTable(size int, names []string) *FreqTable {
	return &FreqTable{Names: names, counts: make([]atomic.Uint64, size)}
}

// Hit increments the count for symbol index i.
func (t *FreqTable) Hit(i int) {
	if i < 0 || i >= len(t.counts) {
		return
	}
	t.counts[i].Inc()
}

// Size returns the alphabet size.
func (t *FreqTable) Size() int { return len(t.counts) }

// Counts returns a snapshot of the raw hit counts.
func (t *FreqTable) Counts() []uint64 {
	out := make([]uint64, len(t.counts))
	for i := range t.counts {
		out[i] = t.counts[i].Load()
	}
	return out
}

// ErrBadProbTable covers every way a requested ProbTable lookup can fail:
// an absent context, a table whose total count is zero, or a zero-size
// symbol looked up without escape capability.
var ErrBadProbTable = fmt.Errorf("pathmodel: bad prob table")

// ProbTable is a FreqTable's raw counts rescaled to ProbTotal (minus one
// escape slot if any symbol had a zero count), ready for entropy coding.
type ProbTable struct {
	Key         string
	Names       []string
	Probs       []uint64
	Accum       []uint64
	Total       uint64
	AllowEscape bool
}

// BuildProbTable scales raw counts into a ProbTable. Any input count of
// zero makes the table escape-capable (reserves one slot of the 2^18
// budget for an unseen symbol); every raw count above zero scales to at
// least 1. Rounding error from the floor is absorbed into the
// largest-count symbol so the cumulative sum lands exactly on budget,
// matching the "sum(accum) + escape == 2^18" invariant.
func BuildProbTable(key string, names []string, counts []uint64) (*ProbTable, error) {
	var sum uint64
	allowEscape := false
	maxIdx := -1
	var maxCount uint64
	for i, c := range counts {
		sum += c
		if c == 0 {
			allowEscape = true
		}
		if c > maxCount {
			maxCount = c
			maxIdx = i
		}
	}
	if sum == 0 {
		return nil, fmt.Errorf("%w: context %q has zero total count", ErrBadProbTable, key)
	}

	budget := uint64(ProbTotal)
	if allowEscape {
		budget--
	}
	scale := float64(budget) / float64(sum)

	probs := make([]uint64, len(counts))
	var scaledSum uint64
	for i, c := range counts {
		if c == 0 {
			continue
		}
		v := uint64(math.Floor(float64(c) * scale))
		if v < 1 {
			v = 1
		}
		probs[i] = v
		scaledSum += v
	}
	if diff := int64(budget) - int64(scaledSum); diff != 0 && maxIdx >= 0 {
		probs[maxIdx] = uint64(int64(probs[maxIdx]) + diff)
	}

	accum := make([]uint64, len(probs))
	var running uint64
	for i, p := range probs {
		running += p
		accum[i] = running
	}

	return &ProbTable{
		Key:         key,
		Names:       names,
		Probs:       probs,
		Accum:       accum,
		Total:       ProbTotal,
		AllowEscape: allowEscape,
	}, nil
}

// OffsetSizeTotal returns the (offset, size, total) triple an entropy coder
// needs to emit symbol index as a range-coded interval. size == 0 without
// escape capability is ErrBadProbTable.
func (t *ProbTable) OffsetSizeTotal(index int) (offset, size, total uint64, err error) {
	if index < 0 || index >= len(t.Probs) {
		return 0, 0, 0, fmt.Errorf("%w: index %d out of range for %q", ErrBadProbTable, index, t.Key)
	}
	size = t.Probs[index]
	if size == 0 && !t.AllowEscape {
		return 0, 0, 0, fmt.Errorf("%w: zero-size symbol %d in %q without escape", ErrBadProbTable, index, t.Key)
	}
	if index > 0 {
		offset = t.Accum[index-1]
	}
	return offset, size, t.Total, nil
}

// Bits returns the coding cost in bits of emitting symbol index: log2(total
// / size).
func (t *ProbTable) Bits(index int) (float64, error) {
	_, size, total, err := t.OffsetSizeTotal(index)
	if err != nil {
		return 0, err
	}
	return math.Log2(float64(total) / float64(size)), nil
}
