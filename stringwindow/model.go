package stringwindow

// Kind distinguishes the three independent per-file caches named in the
// component design: identifiers, property names, and raw string literals.
type Kind uint8

const (
	KindIdent Kind = iota
	KindProp
	KindRaw
)

func (k Kind) String() string {
	switch k {
	case KindIdent:
		return "ident"
	case KindProp:
		return "prop"
	case KindRaw:
		return "raw"
	default:
		return "unknown"
	}
}

// Model bundles the three per-kind StringCaches a single file's entropy
// coding pass needs, plus the corpus-wide HitCounters those lookups feed.
type Model struct {
	Caches   map[Kind]*StringCache
	Counters map[Kind]*HitCounter
}

// NewModel returns a Model with fresh per-file caches over the given
// window size, reporting into the given corpus-wide counters (counters may
// be shared across every file in a run).
func NewModel(windowSize int, counters map[Kind]*HitCounter) *Model {
	return &Model{
		Caches: map[Kind]*StringCache{
			KindIdent: NewStringCache(windowSize),
			KindProp:  NewStringCache(windowSize),
			KindRaw:   NewStringCache(windowSize),
		},
		Counters: counters,
	}
}

// NewCounters returns a fresh, independent HitCounter per kind, sized for
// windowSize.
func NewCounters(windowSize int) map[Kind]*HitCounter {
	return map[Kind]*HitCounter{
		KindIdent: NewHitCounter(windowSize),
		KindProp:  NewHitCounter(windowSize),
		KindRaw:   NewHitCounter(windowSize),
	}
}

// Lookup performs a cache lookup for the given kind, recording the outcome
// in that kind's HitCounter if one is present.
func (m *Model) Lookup(kind Kind, str string) int64 {
	pos := m.Caches[kind].Lookup(str)
	if c, ok := m.Counters[kind]; ok {
		c.Observe(pos)
	}
	return pos
}
