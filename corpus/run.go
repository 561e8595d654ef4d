package corpus

import (
	"fmt"

	"go.uber.org/multierr"

	"github.com/binast/binpack/entropy"
	"github.com/binast/binpack/gtype"
	"github.com/binast/binpack/internal/blog"
	"github.com/binast/binpack/pathmodel"
	"github.com/binast/binpack/schema"
	"github.com/binast/binpack/stringwindow"
	"github.com/binast/binpack/tree"
)

// Script is one parsed file a corpus run walks: the typed tree an external
// importer produced, paired with the name its artifacts are reported
// under.
type Script struct {
	Name string
	Root gtype.TypeSet
	Tree gtype.Value
}

// TrainResult is the outcome of a training pass: the populated Trainer
// (its artifacts can be rendered and written by the caller) plus the
// per-file errors encountered, none of which stopped the run.
type TrainResult struct {
	Trainer *Trainer
	Errors  error // combined via multierr; nil if every file trained cleanly
}

// Train walks every script in scripts against schema s, accumulating
// Path-Suffix and String Window statistics into one Trainer shared across
// the whole run (the concurrency design's single-threaded, serialized
// resource-sharing discipline). A file that fails to walk — a value that
// doesn't match its schema bound, or an ambiguous resolution — is
// recorded and skipped; it does not stop the run, matching the
// per-file-fatal error classes.
func Train(s *schema.Schema, scripts []Script, suffixLengths []int, windowSize int) TrainResult {
	trainer := NewTrainer(s, pathmodel.NewInterner(), suffixLengths, windowSize)
	var errs error
	for _, script := range scripts {
		blog.DbgPrint("corpus: training %s", script.Name)
		if err := trainer.WalkFile(script.Root, script.Tree, windowSize); err != nil {
			blog.Warningf("corpus: training %s: %v", script.Name, err)
			errs = multierr.Append(errs, fmt.Errorf("corpus: training %s: %w", script.Name, err))
		}
	}
	return TrainResult{Trainer: trainer, Errors: errs}
}

// EncodeResult is the outcome of an encoding pass: one Summary per
// successfully coded file, plus the combined per-file errors.
type EncodeResult struct {
	Summaries map[string]entropy.Summary
	Errors    error
}

// Encode runs an entropy.Coder over every script using previously-trained
// tables, returning one Summary per file. comparisons supplies the
// external gzip/brotli sizes for each script by name (a zero Comparison is
// used for any name absent from the map). A per-file coding error is
// recorded and that file is skipped, not fatal to the run.
func Encode(s *schema.Schema, scripts []Script, tables *entropy.Tables, windowSize int, comparisons map[string]entropy.Comparison) EncodeResult {
	paths := pathmodel.NewInterner()
	result := EncodeResult{Summaries: make(map[string]entropy.Summary, len(scripts))}
	for _, script := range scripts {
		blog.DbgPrint("corpus: encoding %s", script.Name)
		strModel := stringwindow.NewModel(windowSize, stringwindow.NewCounters(windowSize))
		coder := entropy.NewCoder(s, paths, tables, strModel)
		if err := tree.Walk(s, script.Root, script.Tree, coder); err != nil {
			blog.Warningf("corpus: encoding %s: %v", script.Name, err)
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("corpus: encoding %s: %w", script.Name, err))
			continue
		}
		summary, err := entropy.BuildSummary(coder, comparisons[script.Name])
		if err != nil {
			blog.Warningf("corpus: summarizing %s: %v", script.Name, err)
			result.Errors = multierr.Append(result.Errors, fmt.Errorf("corpus: summarizing %s: %w", script.Name, err))
			continue
		}
		result.Summaries[script.Name] = summary
	}
	return result
}
