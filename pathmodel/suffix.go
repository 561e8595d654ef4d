package pathmodel

import (
	"strconv"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/tree"
)

// formatLeafKey renders loc's own edge key (the field name, or array index
// collapsed to the symbol "index" once it reaches indexThreshold).
func formatLeafKey(loc *tree.Location) string {
	if loc.IsArrayElem {
		if loc.ArrayIndex >= indexThreshold {
			return "index"
		}
		return strconv.Itoa(loc.ArrayIndex)
	}
	return loc.FieldName
}

func reversed(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[len(ss)-1-i] = s
	}
	return out
}

// ForLocation builds the length-slice PathSuffix anchored at loc, or
// returns nil if the ancestor chain is too shallow or crosses an array
// boundary before enough node anchors are found.
func (in *Interner) ForLocation(s *schema.Schema, loc *tree.Location, length int) *PathSuffix {
	symAccum := []string{formatLeafKey(loc)}
	var sliceAccum []*PathSlice

	ancestor := loc.Parent
	for len(sliceAccum) < length && ancestor != nil {
		if ancestor.IsArrayElem {
			return nil
		}
		if isNodeIface(s, ancestor) {
			slice := in.slices.intern(string(ancestor.Resolved.Ty.Name()), reversed(symAccum))
			sliceAccum = append(sliceAccum, slice)
			symAccum = []string{ancestor.FieldName}
		} else {
			symAccum = append(symAccum, ancestor.FieldName)
		}
		ancestor = ancestor.Parent
	}

	if len(sliceAccum) < length || len(symAccum) != 1 {
		return nil
	}
	return in.suffixes.intern(reversedSlices(sliceAccum))
}

func reversedSlices(ss []*PathSlice) []*PathSlice {
	out := make([]*PathSlice, len(ss))
	for i, s := range ss {
		out[len(ss)-1-i] = s
	}
	return out
}

func isNodeIface(s *schema.Schema, loc *tree.Location) bool {
	if loc.Resolved.Ty == nil || loc.Resolved.Ty.Kind() != gtype.KIface {
		return false
	}
	d, err := s.GetDecl(loc.Resolved.Ty.Name())
	if err != nil {
		return false
	}
	return d.IsNode
}

// LongestSuffix tries lengths in the given order (longest first) and
// returns the first PathSuffix that resolves, or nil if none do.
func (in *Interner) LongestSuffix(s *schema.Schema, loc *tree.Location, lengths []int) *PathSuffix {
	for _, l := range lengths {
		if suf := in.ForLocation(s, loc, l); suf != nil {
			return suf
		}
	}
	return nil
}

// ValueTag names the value-shaped ProbTable context suffix a leaf type
// maps to, plus the alphabet index to hit within it. A zero-value
// ValueTag (Tag == "") means the type carries no value-index context:
// either it isn't a leaf the Path-Suffix model tracks (Iface/Null), or it
// routes through the String Window instead (Ident/Str), or it is coded
// as a raw literal (F64).
type ValueTag struct {
	Tag   string
	Index int
}

const (
	uintAlphabetSize        = 9  // [0..=7, MISS]
	intAlphabetSize         = 9  // [-1..=6, MISS]
	arrayLengthAlphabetSize = 17 // [0..=15, MISS]
)

// UintAlphabet, IntAlphabet, ArrayLengthAlphabet, BoolAlphabet are the
// fixed named alphabets for the corresponding ValueTag.Tag, in the exact
// order their ValueTagAndIndex mapping assigns indices.
var (
	BoolAlphabet        = []string{"true", "false"}
	UintAlphabet        = namedIntRange(0, uintAlphabetSize-2, true)
	IntAlphabet         = namedIntRange(-1, intAlphabetSize-3, true)
	ArrayLengthAlphabet = namedIntRange(0, arrayLengthAlphabetSize-2, true)
)

func namedIntRange(lo, hi int, withMiss bool) []string {
	out := make([]string, 0, hi-lo+2)
	for i := lo; i <= hi; i++ {
		out = append(out, strconv.Itoa(i))
	}
	if withMiss {
		out = append(out, "MISS")
	}
	return out
}

// AlphabetForTag returns the named alphabet a ValueTag.Tag was drawn from:
// one of the fixed Bool/Uint/Int/ArrayLength alphabets, or (for an enum
// tag, which names the enum declaration itself) that enum's variants.
func AlphabetForTag(s *schema.Schema, tag ValueTag) ([]string, error) {
	switch tag.Tag {
	case "bool":
		return BoolAlphabet, nil
	case "uint":
		return UintAlphabet, nil
	case "int":
		return IntAlphabet, nil
	case "arrayLength":
		return ArrayLengthAlphabet, nil
	default:
		return s.EnumVariants(gtype.TypeName(tag.Tag))
	}
}

// ValueTagAndIndex maps a leaf value to its (tag, index) context, or the
// zero ValueTag if ty carries no Path-Suffix value context of its own.
func ValueTagAndIndex(s *schema.Schema, ty *gtype.FieldType, v gtype.Value) (ValueTag, bool, error) {
	switch ty.Kind() {
	case gtype.KPrimitive:
		switch ty.Primitive() {
		case gtype.PrimBool:
			idx := 1
			if v.AsBool() {
				idx = 0
			}
			return ValueTag{Tag: "bool", Index: idx}, true, nil
		case gtype.PrimUint:
			n := uintAlphabetSize
			val := v.AsInt()
			idx := n - 1
			if val >= 0 && val < int64(n-1) {
				idx = int(val)
			}
			return ValueTag{Tag: "uint", Index: idx}, true, nil
		case gtype.PrimInt:
			n := intAlphabetSize
			val := v.AsInt()
			idx := n - 1
			if val >= -1 && val <= int64(n-3) {
				idx = int(val) + 1
			}
			return ValueTag{Tag: "int", Index: idx}, true, nil
		case gtype.PrimNull, gtype.PrimF64, gtype.PrimStr:
			return ValueTag{}, false, nil
		}
	case gtype.KArray:
		n := arrayLengthAlphabetSize
		length := v.Len()
		idx := n - 1
		if length < n-1 {
			idx = length
		}
		return ValueTag{Tag: "arrayLength", Index: idx}, true, nil
	case gtype.KEnum:
		variants, err := s.EnumVariants(ty.Name())
		if err != nil {
			return ValueTag{}, false, err
		}
		for i, variant := range variants {
			if variant == v.AsString() {
				return ValueTag{Tag: string(ty.Name()), Index: i}, true, nil
			}
		}
		return ValueTag{}, false, nil
	case gtype.KIdent, gtype.KIface:
		return ValueTag{}, false, nil
	}
	return ValueTag{}, false, nil
}
