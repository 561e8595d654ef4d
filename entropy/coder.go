package entropy

import (
	"fmt"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/pathmodel"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/stringwindow"
	"github.com/binast/binpack/tree"
)

// DefaultSuffixLengths is the longest-first order the Path-Suffix lookup
// tries, matching the two-and-one sweep named in the component design.
var DefaultSuffixLengths = []int{2, 1}

// Coder is the per-file entropy-coding tree.Handler. It is stateless
// between locations except for its three StringCaches, its literal string
// table, and its bit/symbol counters — the same state a begin/end pair
// would thread through a recursive coder, flattened here because the
// Visitor already manages descent.
type Coder struct {
	schema        *schema.Schema
	paths         *pathmodel.Interner
	suffixLengths []int
	tables        *Tables
	strings       *stringwindow.Model
	literals      *LiteralStringTable
	counters      *BitCounters
}

// NewCoder returns a ready-to-drive Coder. strings should be a fresh
// per-file stringwindow.Model (its caches start empty for every file);
// tables carries the corpus-trained inputs the coder consumes.
func NewCoder(s *schema.Schema, paths *pathmodel.Interner, tables *Tables, strings *stringwindow.Model) *Coder {
	return &Coder{
		schema:        s,
		paths:         paths,
		suffixLengths: DefaultSuffixLengths,
		tables:        tables,
		strings:       strings,
		literals:      NewLiteralStringTable(),
		counters:      NewBitCounters(),
	}
}

// Counters returns the bit/symbol counters accumulated so far.
func (c *Coder) Counters() *BitCounters { return c.counters }

// Literals returns the per-file literal string table.
func (c *Coder) Literals() *LiteralStringTable { return c.literals }

// EstimatedSize returns the total file size estimate: the ceil-to-byte
// symbol stream plus the literal table's encoded size.
func (c *Coder) EstimatedSize() (int, error) {
	litSize, err := c.literals.EncodedSize()
	if err != nil {
		return 0, err
	}
	return c.counters.TotalBytes() + litSize, nil
}

// Visit implements tree.Handler. A nil loc is the end-of-subtree signal,
// which carries no work here since Coder holds no per-subtree state.
func (c *Coder) Visit(loc *tree.Location) (tree.Handler, error) {
	if loc == nil {
		return nil, nil
	}
	if err := c.emit(loc); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Coder) emit(loc *tree.Location) error {
	if loc.Parent == nil {
		// The root has no ancestor chain to build a path suffix from.
		return nil
	}
	suffix := c.paths.LongestSuffix(c.schema, loc, c.suffixLengths)
	if suffix == nil {
		return nil
	}

	if len(loc.TypeSet) > 1 {
		if err := c.emitTypeTag(suffix, loc); err != nil {
			return err
		}
	}
	return c.emitValue(suffix, loc)
}

func (c *Coder) emitTypeTag(suffix *pathmodel.PathSuffix, loc *tree.Location) error {
	names := make([]string, len(loc.TypeSet))
	for i, ty := range loc.TypeSet {
		names[i] = ty.String()
	}
	key := suffix.KeyString() + "#type"
	table, err := c.lookupOrUniform(key, names)
	if err != nil {
		return err
	}
	bits, err := table.Bits(loc.Resolved.Index)
	if err != nil {
		return fmt.Errorf("entropy: type tag at %q: %w", key, err)
	}
	c.counters.Charge("type", loc.Resolved.Ty.String(), bits)
	return nil
}

func (c *Coder) emitValue(suffix *pathmodel.PathSuffix, loc *tree.Location) error {
	ty := loc.Resolved.Ty
	tag, ok, err := pathmodel.ValueTagAndIndex(c.schema, ty, loc.Value)
	if err != nil {
		return err
	}
	if ok {
		return c.emitValueTag(suffix, loc, tag)
	}

	switch {
	case ty.Kind() == gtype.KIdent && ty.IdentTag() == gtype.IdentVar:
		return c.emitString(stringwindow.KindIdent, loc.Value.AsIdent().Name)
	case ty.Kind() == gtype.KIdent && ty.IdentTag() == gtype.IdentProp:
		return c.emitString(stringwindow.KindProp, loc.Value.AsIdent().Name)
	case ty.Kind() == gtype.KPrimitive && ty.Primitive() == gtype.PrimStr:
		return c.emitString(stringwindow.KindRaw, loc.Value.AsString())
	case ty.Kind() == gtype.KPrimitive && ty.Primitive() == gtype.PrimF64:
		c.counters.Charge("value", ty.String(), 64)
		return nil
	case ty.Kind() == gtype.KIface, ty.Kind() == gtype.KPrimitive && ty.Primitive() == gtype.PrimNull:
		return nil
	default:
		return fmt.Errorf("entropy: no value-emission rule for type %s", ty)
	}
}

func (c *Coder) emitValueTag(suffix *pathmodel.PathSuffix, loc *tree.Location, tag pathmodel.ValueTag) error {
	alphabet, err := pathmodel.AlphabetForTag(c.schema, tag)
	if err != nil {
		return err
	}
	key := suffix.KeyString() + "#" + tag.Tag
	table, err := c.lookupOrUniform(key, alphabet)
	if err != nil {
		return err
	}
	bits, err := table.Bits(tag.Index)
	if err != nil {
		return fmt.Errorf("entropy: value at %q: %w", key, err)
	}
	c.counters.Charge("value", loc.Resolved.Ty.String(), bits)
	return nil
}

// lookupOrUniform returns the corpus-trained ProbTable for key if one was
// supplied, or an on-the-fly uniform distribution over names otherwise.
//
// This is the resolution of the open question of what to do when a
// context was never seen during training: rather than abort the whole
// file (matching the per-file, not corpus-wide, fatality the probability-
// table error class otherwise carries), an unseen context costs about
// log2(len(names)) bits (exactly, when len(names) is a power of two; the
// scaling remainder goes to the first symbol otherwise), as if nothing had
// been learned about it at all.
func (c *Coder) lookupOrUniform(key string, names []string) (*pathmodel.ProbTable, error) {
	if t, ok := c.tables.PathSuffix[key]; ok {
		return t, nil
	}
	counts := make([]uint64, len(names))
	for i := range counts {
		counts[i] = 1
	}
	return pathmodel.BuildProbTable(key, names, counts)
}

func (c *Coder) emitString(kind stringwindow.Kind, str string) error {
	pos := c.strings.Lookup(kind, str)
	table, ok := c.tables.StringWindow[kind]
	if !ok {
		return fmt.Errorf("entropy: no string-window ProbTable for kind %s", kind)
	}
	n := len(table.Probs)
	index := n - 1
	if pos >= 0 && int(pos) < n-1 {
		index = int(pos)
	}
	bits, err := table.Bits(index)
	if err != nil {
		return fmt.Errorf("entropy: string window %s: %w", kind, err)
	}
	c.counters.Charge("string", kind.String(), bits)

	if pos >= 0 {
		return nil
	}

	var rawIndex int
	if idx, found := c.tables.GlobalDict.Lookup(str); found {
		rawIndex = idx
	} else {
		rawIndex = c.tables.GlobalDict.Len() + c.literals.Append(str)
	}
	refBits, err := varUintBits(rawIndex)
	if err != nil {
		return err
	}
	c.counters.Charge("stringRef", kind.String(), refBits)
	return nil
}

func varUintBits(v int) (float64, error) {
	n, err := VarUintSize(uint64(v))
	if err != nil {
		return 0, err
	}
	return float64(n * 8), nil
}
