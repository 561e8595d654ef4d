// Package pathmodel implements the Path-Suffix Model: canonical bounded
// ancestor-path keys, frequency tables per (path, tag) context, and the
// ProbTable construction those frequency tables are scaled into.
//
// Interning follows the dolthub/dolt-style structural-key idiom already
// used in package gtype, narrowed here to a map guarded by a mutex so the
// corpus driver can share one table across files processed in sequence.
package pathmodel

import (
	"strings"
	"sync"
)

// indexThreshold is the numeric-key collapse point named in the spec's
// Path-Suffix algorithm: a leaf array index at or beyond this value is
// folded to the symbolic key "index" so that array tails with thousands of
// elements don't explode the path-slice alphabet.
const indexThreshold = 4

// PathSlice is one interface-anchored segment of a path suffix: the
// interface a node belongs to, plus the ordered chain of field names or
// small array indices that reached the next anchor.
type PathSlice struct {
	Iface string
	Syms  []string
	key   string
}

func newPathSlice(iface string, syms []string) *PathSlice {
	return &PathSlice{Iface: iface, Syms: syms, key: sliceKey(iface, syms)}
}

func sliceKey(iface string, syms []string) string {
	var b strings.Builder
	b.WriteString(iface)
	for _, s := range syms {
		b.WriteByte('.')
		b.WriteString(s)
	}
	return b.String()
}

// Key returns the "ifaceName.sym1.sym2…" interned key string.
func (p *PathSlice) Key() string { return p.key }

// sliceInterner interns PathSlices by structural key so equal slices share
// one pointer, mirroring the gtype.Registry idiom.
type sliceInterner struct {
	mu   sync.Mutex
	byKey map[string]*PathSlice
}

func newSliceInterner() *sliceInterner {
	return &sliceInterner{byKey: make(map[string]*PathSlice)}
}

func (in *sliceInterner) intern(iface string, syms []string) *PathSlice {
	k := sliceKey(iface, syms)
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.byKey[k]; ok {
		return existing
	}
	ps := newPathSlice(iface, append([]string(nil), syms...))
	in.byKey[k] = ps
	return ps
}

// PathSuffix is a fixed-length ordered list of PathSlices, interned by
// joining their Keys with "/".
type PathSuffix struct {
	Slices []*PathSlice
	key    string
}

// KeyString is the ProbTable context key for this suffix, before the
// "#type" or "#<valueTag>" suffix is appended.
func (ps *PathSuffix) KeyString() string { return ps.key }

type suffixInterner struct {
	mu    sync.Mutex
	byKey map[string]*PathSuffix
}

func newSuffixInterner() *suffixInterner {
	return &suffixInterner{byKey: make(map[string]*PathSuffix)}
}

func (in *suffixInterner) intern(slices []*PathSlice) *PathSuffix {
	keys := make([]string, len(slices))
	for i, s := range slices {
		keys[i] = s.Key()
	}
	k := strings.Join(keys, "/")
	in.mu.Lock()
	defer in.mu.Unlock()
	if existing, ok := in.byKey[k]; ok {
		return existing
	}
	ps := &PathSuffix{Slices: append([]*PathSlice(nil), slices...), key: k}
	in.byKey[k] = ps
	return ps
}

// Interner owns the PathSlice and PathSuffix intern tables shared across a
// corpus run.
type Interner struct {
	slices  *sliceInterner
	suffixes *suffixInterner
}

// NewInterner returns an empty, ready-to-use Interner.
func NewInterner() *Interner {
	return &Interner{slices: newSliceInterner(), suffixes: newSuffixInterner()}
}
