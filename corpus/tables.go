package corpus

import (
	"errors"
	"fmt"

	"github.com/binast/binpack/entropy"
	"github.com/binast/binpack/pathmodel"
	"github.com/binast/binpack/stringwindow"
)

// BuildProbTables scales a trained PathSuffixArtifact's raw counts into
// the ProbTable map an entropy.Coder consumes, keyed by the same
// "<suffix>#<tag>" context strings the artifact itself uses.
func BuildProbTables(artifact PathSuffixArtifact) (map[string]*pathmodel.ProbTable, error) {
	out := make(map[string]*pathmodel.ProbTable, len(artifact))
	for _, entry := range artifact {
		counts := make([]uint64, len(entry.Freqs))
		names := make([]string, len(entry.Freqs))
		for _, f := range entry.Freqs {
			if f.Index < 0 || f.Index >= len(counts) {
				return nil, fmt.Errorf("corpus: context %q: freq index %d out of range", entry.Suffix, f.Index)
			}
			counts[f.Index] = f.Hits
			names[f.Index] = f.Name
		}
		tbl, err := pathmodel.BuildProbTable(entry.Suffix, names, counts)
		if err != nil {
			// A zero-total context carries no coding information; the
			// Coder's escape-to-uniform fallback handles its absence at
			// encode time, so skip rather than fail the whole build.
			continue
		}
		out[entry.Suffix] = tbl
	}
	return out, nil
}

// BuildStringWindowProbTables scales a trained StringWindowArtifact's raw
// counts into up to three per-kind ProbTables an entropy.Coder consumes. A
// kind that was never observed during training (its row is all zeros, e.g.
// a schema with no Ident(var) fields at all) carries no coding information
// and is omitted rather than failing the whole build; the Coder only
// consults a kind's table when a value of that kind actually occurs.
func BuildStringWindowProbTables(artifact StringWindowArtifact) (map[stringwindow.Kind]*pathmodel.ProbTable, error) {
	out := make(map[stringwindow.Kind]*pathmodel.ProbTable, 3)
	build := func(kind stringwindow.Kind, rows []float64) error {
		counts := make([]uint64, len(rows))
		for i, r := range rows {
			counts[i] = uint64(r)
		}
		tbl, err := pathmodel.BuildProbTable("stringwindow/"+kind.String(), nil, counts)
		if err != nil {
			if errors.Is(err, pathmodel.ErrBadProbTable) {
				return nil
			}
			return fmt.Errorf("corpus: string-window %s: %w", kind, err)
		}
		out[kind] = tbl
		return nil
	}
	if err := build(stringwindow.KindIdent, artifact.Idents[:artifact.WindowSize+1]); err != nil {
		return nil, err
	}
	if err := build(stringwindow.KindProp, artifact.Props[:artifact.WindowSize+1]); err != nil {
		return nil, err
	}
	if err := build(stringwindow.KindRaw, artifact.Strings[:artifact.WindowSize+1]); err != nil {
		return nil, err
	}
	return out, nil
}

// BuildGlobalDict takes the leading MaxGlobalDictEntries of a
// GlobalStringsArtifact (already sorted by total count descending) and
// inserts them, in order, into a fresh stringwindow.GlobalDict.
func BuildGlobalDict(artifact GlobalStringsArtifact) *stringwindow.GlobalDict {
	d := stringwindow.NewGlobalDict()
	n := len(artifact)
	if n > MaxGlobalDictEntries {
		n = MaxGlobalDictEntries
	}
	for _, entry := range artifact[:n] {
		d.Add(entry.Str)
	}
	return d
}

// BuildTables assembles a full entropy.Tables from trained artifacts,
// ready to drive one or more entropy.Coder runs.
func BuildTables(pathSuffix PathSuffixArtifact, stringWindow StringWindowArtifact, globalStrings GlobalStringsArtifact) (*entropy.Tables, error) {
	psTables, err := BuildProbTables(pathSuffix)
	if err != nil {
		return nil, err
	}
	swTables, err := BuildStringWindowProbTables(stringWindow)
	if err != nil {
		return nil, err
	}
	return &entropy.Tables{
		PathSuffix:   psTables,
		StringWindow: swTables,
		GlobalDict:   BuildGlobalDict(globalStrings),
	}, nil
}
