package entropy

import (
	"github.com/binast/binpack/pathmodel"
	"github.com/binast/binpack/stringwindow"
)

// Tables bundles every corpus-trained input a Coder consumes: it builds
// none of these itself (package corpus does, from a prior training pass
// over the same kind of corpus), it only reads them.
type Tables struct {
	// PathSuffix maps a full context key ("<suffixKey>#type" or
	// "<suffixKey>#<valueTag>") to its ProbTable.
	PathSuffix map[string]*pathmodel.ProbTable

	// StringWindow maps each of the three String Window kinds to its
	// corpus-trained ProbTable, sized windowSize+1 (the +1 is the escape
	// slot for a cache miss).
	StringWindow map[stringwindow.Kind]*pathmodel.ProbTable

	// GlobalDict is consulted, never mutated, during coding: a string
	// either already has a corpus-wide index or it doesn't.
	GlobalDict GlobalLookup
}

// GlobalLookup is the read-only view of the global string dictionary a
// Coder needs; stringwindow.GlobalDict satisfies it.
type GlobalLookup interface {
	Lookup(str string) (int, bool)
	Len() int
}
