package corpus

import (
	"encoding/json"
	"testing"

	"github.com/pmezard/go-difflib/difflib"
)

// TestPathSuffixArtifactJSONGolden renders a PathSuffixArtifact to indented
// JSON and diffs it against a golden string with go-difflib, the same
// unified-diff-on-mismatch style used for generated JSON corpus artifacts.
func TestPathSuffixArtifactJSONGolden(t *testing.T) {
	artifact := PathSuffixArtifact{
		{
			Suffix:       "Program.stmt/Stmt.flag#type",
			TotalHits:    4,
			TotalSymbols: 2,
			Freqs: []PathSuffixFreq{
				{Name: "Bool", Index: 0, Hits: 3},
				{Name: "Uint", Index: 1, Hits: 1},
			},
		},
	}
	got, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	want := `[
  {
    "suffix": "Program.stmt/Stmt.flag#type",
    "totalHits": 4,
    "totalSymbols": 2,
    "freqs": [
      {
        "name": "Bool",
        "index": 0,
        "hits": 3
      },
      {
        "name": "Uint",
        "index": 1,
        "hits": 1
      }
    ]
  }
]`
	if string(got) != want {
		diff := difflib.UnifiedDiff{
			A:        difflib.SplitLines(want),
			B:        difflib.SplitLines(string(got)),
			FromFile: "want",
			ToFile:   "got",
			Context:  2,
		}
		text, _ := difflib.GetUnifiedDiffString(diff)
		t.Errorf("PathSuffixArtifact JSON mismatch:\n%s", text)
	}
}
