package corpus

import (
	"testing"

	"github.com/binast/binpack/stringwindow"
)

func TestBuildProbTablesSkipsZeroTotalContexts(t *testing.T) {
	artifact := PathSuffixArtifact{
		{Suffix: "A.b#type", Freqs: []PathSuffixFreq{{Name: "Bool", Index: 0, Hits: 3}, {Name: "Uint", Index: 1, Hits: 1}}},
		{Suffix: "A.c#type", Freqs: []PathSuffixFreq{{Name: "Bool", Index: 0, Hits: 0}}},
	}
	tables, err := BuildProbTables(artifact)
	if err != nil {
		t.Fatalf("BuildProbTables: %v", err)
	}
	if _, ok := tables["A.b#type"]; !ok {
		t.Errorf("missing table for A.b#type")
	}
	if _, ok := tables["A.c#type"]; ok {
		t.Errorf("zero-total context A.c#type should have been skipped, not built")
	}
}

func TestBuildStringWindowProbTables(t *testing.T) {
	artifact := StringWindowArtifact{
		WindowSize: 2,
		Idents:     []float64{5, 3, 1, 9, 8}, // 2 indexed + MISSES,HITS,TOTAL
		Props:      []float64{1, 1, 1, 2, 3},
		Strings:    []float64{0, 0, 1, 0, 1},
	}
	tables, err := BuildStringWindowProbTables(artifact)
	if err != nil {
		t.Fatalf("BuildStringWindowProbTables: %v", err)
	}
	for _, kind := range []stringwindow.Kind{stringwindow.KindIdent, stringwindow.KindProp, stringwindow.KindRaw} {
		if _, ok := tables[kind]; !ok {
			t.Errorf("missing ProbTable for kind %s", kind)
		}
	}
}

func TestBuildGlobalDictCapsAtMaxEntries(t *testing.T) {
	artifact := make(GlobalStringsArtifact, 0, MaxGlobalDictEntries+5)
	for i := 0; i < MaxGlobalDictEntries+5; i++ {
		artifact = append(artifact, GlobalStringEntry{Str: string(rune('a' + i%26)) + string(rune(i)), TotalCount: uint64(MaxGlobalDictEntries + 5 - i)})
	}
	dict := BuildGlobalDict(artifact)
	if dict.Len() != MaxGlobalDictEntries {
		t.Errorf("dict.Len() = %d, want %d", dict.Len(), MaxGlobalDictEntries)
	}
}
