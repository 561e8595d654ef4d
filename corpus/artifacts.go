// Package corpus implements the file store and JSON artifact shapes a
// training/analysis run over many scripts produces and consumes, plus the
// orchestration (Train and Encode) that drives the Visitor over each script
// with a shared Trainer or a per-file Coder.
package corpus

// PathSuffixFreq is one symbol's row within a PathSuffixEntry's freqs
// array: name is the symbol's string name for a named alphabet, or its
// numeric value rendered as a string for a numbered one.
type PathSuffixFreq struct {
	Name  string `json:"name"`
	Index int    `json:"index"`
	Hits  uint64 `json:"hits"`
}

// PathSuffixEntry is one context's row in a path-suffix/<len>/ALL.json
// artifact.
type PathSuffixEntry struct {
	Suffix       string           `json:"suffix"`
	TotalHits    uint64           `json:"totalHits"`
	TotalSymbols int              `json:"totalSymbols"`
	Freqs        []PathSuffixFreq `json:"freqs"`
}

// PathSuffixArtifact is the full path-suffix/<len>/ALL.json document.
type PathSuffixArtifact []PathSuffixEntry

// StringWindowArtifact is the string-window/<size>/ALL.json document: three
// parallel arrays, each windowSize+3 entries long (the indexed hit counts
// followed by MISSES, HITS, TOTAL, matching stringwindow.Summary).
type StringWindowArtifact struct {
	WindowSize int       `json:"windowSize"`
	Idents     []float64 `json:"idents"`
	Props      []float64 `json:"props"`
	Strings    []float64 `json:"strings"`
}

// GlobalStringEntry is one row of the global-strings/ALL.json document.
type GlobalStringEntry struct {
	Str        string `json:"str"`
	IdentCount uint64 `json:"identCount"`
	PropCount  uint64 `json:"propCount"`
	RawCount   uint64 `json:"rawCount"`
	TotalCount uint64 `json:"totalCount"`
}

// GlobalStringsArtifact is the full global-strings/ALL.json document,
// sorted by TotalCount descending; MaxGlobalDictEntries of it form the
// global dictionary a Coder consumes.
type GlobalStringsArtifact []GlobalStringEntry

// MaxGlobalDictEntries is the number of leading (highest-count) entries of
// a GlobalStringsArtifact that become the global dictionary, matching
// stringwindow.MaxGlobalDictSize.
const MaxGlobalDictEntries = 4096
