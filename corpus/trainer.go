package corpus

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/exp/slices"

	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/pathmodel"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/stringwindow"
	"github.com/binast/binpack/tree"
)

// stringCount tallies, per distinct string, how many times it was
// observed through each of the three String Window kinds; this is exactly
// the per-string row a GlobalStringsArtifact entry reports.
type stringCount struct {
	ident, prop, raw uint64
}

// Trainer is the tree.Handler that accumulates Path-Suffix frequency
// tables and String Window global statistics across every file in a
// corpus run. Its frequency tables and string counts are the shared,
// driver-serialized resources named in the concurrency design: a single
// Trainer is meant to be reused, one Visit-driven walk per file, across
// the whole corpus.
type Trainer struct {
	schemaRef     *schema.Schema
	paths         *pathmodel.Interner
	suffixLengths []int

	mu         sync.Mutex
	freqTables map[string]*pathmodel.FreqTable

	hitCounters map[stringwindow.Kind]*stringwindow.HitCounter

	stringsMu sync.Mutex
	strings   map[string]*stringCount
}

// NewTrainer returns a Trainer ready to walk any number of files against
// schema s, keying Path-Suffix contexts over the given suffix lengths
// (longest tried first) and String Window hit counters sized windowSize.
func NewTrainer(s *schema.Schema, paths *pathmodel.Interner, suffixLengths []int, windowSize int) *Trainer {
	lengths := append([]int(nil), suffixLengths...)
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	return &Trainer{
		schemaRef:     s,
		paths:         paths,
		suffixLengths: lengths,
		freqTables:    make(map[string]*pathmodel.FreqTable),
		hitCounters:   stringwindow.NewCounters(windowSize),
		strings:       make(map[string]*stringCount),
	}
}

// NewFileModel returns a fresh per-file stringwindow.Model whose caches
// start empty but which reports hits into this Trainer's shared,
// corpus-wide HitCounters.
func (t *Trainer) NewFileModel(windowSize int) *stringwindow.Model {
	return stringwindow.NewModel(windowSize, t.hitCounters)
}

// WalkFile drives a single file's training pass: it walks value, rooted at
// rootTypeSet, against the Trainer's schema with a handler that feeds t and
// a fresh per-file stringwindow.Model of the given windowSize.
func (t *Trainer) WalkFile(rootTypeSet gtype.TypeSet, value gtype.Value, windowSize int) error {
	fileHandler := &trainerFileHandler{t: t, strModel: t.NewFileModel(windowSize)}
	return tree.Walk(t.schemaRef, rootTypeSet, value, fileHandler)
}

// trainerFileHandler closes over the one per-file StringCache state a
// training walk needs (the Trainer itself holds only corpus-wide state).
type trainerFileHandler struct {
	t        *Trainer
	strModel *stringwindow.Model
}

func (h *trainerFileHandler) Visit(loc *tree.Location) (tree.Handler, error) {
	if loc == nil {
		return nil, nil
	}
	if err := h.t.observe(loc, h.strModel); err != nil {
		return nil, err
	}
	return h, nil
}

func (t *Trainer) observe(loc *tree.Location, strModel *stringwindow.Model) error {
	if loc.Parent == nil {
		return nil
	}
	suffix := t.paths.LongestSuffix(t.schemaRef, loc, t.suffixLengths)
	if suffix == nil {
		return nil
	}

	if len(loc.TypeSet) > 1 {
		names := make([]string, len(loc.TypeSet))
		for i, ty := range loc.TypeSet {
			names[i] = ty.String()
		}
		key := suffix.KeyString() + "#type"
		t.freqTable(key, names).Hit(loc.Resolved.Index)
	}

	ty := loc.Resolved.Ty
	tag, ok, err := pathmodel.ValueTagAndIndex(t.schemaRef, ty, loc.Value)
	if err != nil {
		return err
	}
	if ok {
		alphabet, err := pathmodel.AlphabetForTag(t.schemaRef, tag)
		if err != nil {
			return err
		}
		key := suffix.KeyString() + "#" + tag.Tag
		t.freqTable(key, alphabet).Hit(tag.Index)
		return nil
	}

	switch {
	case ty.Kind() == gtype.KIdent && ty.IdentTag() == gtype.IdentVar:
		name := loc.Value.AsIdent().Name
		strModel.Lookup(stringwindow.KindIdent, name)
		t.countString(name, stringwindow.KindIdent)
	case ty.Kind() == gtype.KIdent && ty.IdentTag() == gtype.IdentProp:
		name := loc.Value.AsIdent().Name
		strModel.Lookup(stringwindow.KindProp, name)
		t.countString(name, stringwindow.KindProp)
	case ty.Kind() == gtype.KPrimitive && ty.Primitive() == gtype.PrimStr:
		s := loc.Value.AsString()
		strModel.Lookup(stringwindow.KindRaw, s)
		t.countString(s, stringwindow.KindRaw)
	}
	return nil
}

func (t *Trainer) freqTable(key string, names []string) *pathmodel.FreqTable {
	t.mu.Lock()
	defer t.mu.Unlock()
	if ft, ok := t.freqTables[key]; ok {
		return ft
	}
	ft := pathmodel.NewFreqTable(len(names), names)
	t.freqTables[key] = ft
	return ft
}

func (t *Trainer) countString(s string, kind stringwindow.Kind) {
	t.stringsMu.Lock()
	defer t.stringsMu.Unlock()
	c, ok := t.strings[s]
	if !ok {
		c = &stringCount{}
		t.strings[s] = c
	}
	switch kind {
	case stringwindow.KindIdent:
		c.ident++
	case stringwindow.KindProp:
		c.prop++
	case stringwindow.KindRaw:
		c.raw++
	}
}

// PathSuffixArtifact renders the accumulated Path-Suffix frequency tables
// as a path-suffix/<len>/ALL.json document, sorted by context key for
// deterministic output.
func (t *Trainer) PathSuffixArtifact() PathSuffixArtifact {
	t.mu.Lock()
	defer t.mu.Unlock()
	keys := make([]string, 0, len(t.freqTables))
	for k := range t.freqTables {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	out := make(PathSuffixArtifact, 0, len(keys))
	for _, k := range keys {
		ft := t.freqTables[k]
		counts := ft.Counts()
		entry := PathSuffixEntry{Suffix: k, TotalSymbols: len(counts)}
		for i, c := range counts {
			entry.TotalHits += c
			name := fmt.Sprintf("%d", i)
			if ft.Names != nil && i < len(ft.Names) {
				name = ft.Names[i]
			}
			entry.Freqs = append(entry.Freqs, PathSuffixFreq{Name: name, Index: i, Hits: c})
		}
		out = append(out, entry)
	}
	return out
}

// StringWindowArtifact renders this Trainer's corpus-wide hit counters as
// a string-window/<size>/ALL.json document.
func (t *Trainer) StringWindowArtifact(windowSize int) StringWindowArtifact {
	identSnap := t.hitCounters[stringwindow.KindIdent].Snapshot()
	propSnap := t.hitCounters[stringwindow.KindProp].Snapshot()
	rawSnap := t.hitCounters[stringwindow.KindRaw].Snapshot()
	return StringWindowArtifact{
		WindowSize: windowSize,
		Idents:     snapshotRows(identSnap),
		Props:      snapshotRows(propSnap),
		Strings:    snapshotRows(rawSnap),
	}
}

func snapshotRows(snap stringwindow.Summary) []float64 {
	out := make([]float64, 0, len(snap.Indexed)+3)
	for _, c := range snap.Indexed {
		out = append(out, float64(c))
	}
	out = append(out, float64(snap.Misses), float64(snap.Hits), float64(snap.Total))
	return out
}

// GlobalStringsArtifact renders the accumulated per-string counts as a
// global-strings/ALL.json document, sorted by total count descending (ties
// broken by string value for determinism).
func (t *Trainer) GlobalStringsArtifact() GlobalStringsArtifact {
	t.stringsMu.Lock()
	defer t.stringsMu.Unlock()
	out := make(GlobalStringsArtifact, 0, len(t.strings))
	for s, c := range t.strings {
		out = append(out, GlobalStringEntry{
			Str:        s,
			IdentCount: c.ident,
			PropCount:  c.prop,
			RawCount:   c.raw,
			TotalCount: c.ident + c.prop + c.raw,
		})
	}
	slices.SortFunc(out, func(a, b GlobalStringEntry) int {
		if a.TotalCount != b.TotalCount {
			if a.TotalCount > b.TotalCount {
				return -1
			}
			return 1
		}
		if a.Str < b.Str {
			return -1
		}
		if a.Str > b.Str {
			return 1
		}
		return 0
	})
	return out
}
