package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/binast/binpack/corpus"
	"github.com/binast/binpack/internal/blog"
)

const (
	defaultStringWindowSize = 64
	maxStringWindowSize     = 4096
	defaultPathSuffixLength = 1
	maxPathSuffixLength     = 3
)

func newRunCmd() *cobra.Command {
	run := &cobra.Command{
		Use:   "run",
		Short: "Train a corpus and/or entropy-code its scripts against the resulting models.",
		RunE:  runCorpus,
	}

	run.Flags().String("script-dir", "", "Directory of schema.json plus per-script JSON trees (required).")
	run.Flags().String("result-dir", "", "Directory artifacts are read from and written to (required).")
	run.Flags().Bool("pretty-print", false, "Dump every visited tree location via kr/pretty.")
	run.Flags().Bool("string-window", false, "Train and write the string-window corpus artifact.")
	run.Flags().Bool("path-suffix", false, "Train and write the path-suffix corpus artifact(s).")
	run.Flags().Bool("global-strings", false, "Train and write the global-strings corpus artifact.")
	run.Flags().Bool("entropy-code", false, "Entropy-code every script against the result-dir's trained artifacts.")
	run.Flags().IntSlice("string-window-sizes", []int{defaultStringWindowSize}, "One or more string-window sizes to train (max 4096 each).")
	run.Flags().IntSlice("path-suffix-length", []int{defaultPathSuffixLength}, "One or more path-suffix lengths to train (max 3 each).")
	run.MarkFlagRequired("script-dir")
	run.MarkFlagRequired("result-dir")

	return run
}

// checkBounds reports an error if any entry in values falls outside
// [1, max]; flag is the flag name to name in the error.
func checkBounds(flag string, values []int, max int) error {
	for _, n := range values {
		if n <= 0 || n > max {
			return fmt.Errorf("binpackc: --%s entry %d out of range (1..%d)", flag, n, max)
		}
	}
	return nil
}

func runCorpus(cmd *cobra.Command, args []string) error {
	scriptDir := viper.GetString("script-dir")
	resultDir := viper.GetString("result-dir")
	if scriptDir == "" || resultDir == "" {
		return fmt.Errorf("binpackc: --script-dir and --result-dir are both required")
	}
	windowSizes := viper.GetIntSlice("string-window-sizes")
	suffixLengths := viper.GetIntSlice("path-suffix-length")
	if err := checkBounds("string-window-sizes", windowSizes, maxStringWindowSize); err != nil {
		return err
	}
	if err := checkBounds("path-suffix-length", suffixLengths, maxPathSuffixLength); err != nil {
		return err
	}

	fs := afero.NewOsFs()
	s, err := corpus.LoadSchema(fs, filepath.Join(scriptDir, corpus.SchemaFileName))
	if err != nil {
		return err
	}
	scripts, err := corpus.LoadScripts(fs, s, scriptDir)
	if err != nil {
		return err
	}
	store, err := corpus.OpenStore(fs, resultDir)
	if err != nil {
		return err
	}

	doPathSuffix := viper.GetBool("path-suffix")
	doStringWindow := viper.GetBool("string-window")
	doGlobalStrings := viper.GetBool("global-strings")
	doEntropyCode := viper.GetBool("entropy-code")
	doPrettyPrint := viper.GetBool("pretty-print")

	if !doPathSuffix && !doStringWindow && !doGlobalStrings && !doEntropyCode && !doPrettyPrint {
		return fmt.Errorf("binpackc: at least one of --pretty-print, --string-window, --path-suffix, --global-strings, --entropy-code is required")
	}

	if doPrettyPrint {
		for _, script := range scripts {
			fmt.Fprintf(os.Stdout, "--- %s ---\n", script.Name)
			if err := corpus.PrettyPrintWalk(s, script, os.Stdout); err != nil {
				return err
			}
		}
	}

	trainWindowSize := windowSizes[0]
	trained := corpus.Train(s, scripts, suffixLengths, trainWindowSize)
	if trained.Errors != nil {
		blog.Warningf("binpackc: training errors: %v", trained.Errors)
	}

	if doPathSuffix {
		for _, length := range suffixLengths {
			if err := store.WriteJSON(corpus.PathSuffixArtifactPath(length), trained.Trainer.PathSuffixArtifact()); err != nil {
				return err
			}
		}
	}
	var globalArtifact corpus.GlobalStringsArtifact
	if doStringWindow || doEntropyCode {
		for _, size := range windowSizes {
			sw := trained.Trainer.StringWindowArtifact(size)
			if doStringWindow {
				if err := store.WriteJSON(corpus.StringWindowArtifactPath(size), sw); err != nil {
					return err
				}
			}
		}
	}
	globalArtifact = trained.Trainer.GlobalStringsArtifact()
	if doGlobalStrings {
		if err := store.WriteJSON(corpus.GlobalStringsArtifactPath, globalArtifact); err != nil {
			return err
		}
	}

	if doEntropyCode {
		tables, err := corpus.BuildTables(trained.Trainer.PathSuffixArtifact(), trained.Trainer.StringWindowArtifact(trainWindowSize), globalArtifact)
		if err != nil {
			return err
		}
		encoded := corpus.Encode(s, scripts, tables, trainWindowSize, nil)
		if encoded.Errors != nil {
			blog.Warningf("binpackc: encoding errors: %v", encoded.Errors)
		}
		for _, script := range scripts {
			summary, ok := encoded.Summaries[script.Name]
			if !ok {
				continue
			}
			fmt.Fprintf(os.Stdout, "%s: %s\n", script.Name, summary.String())
		}
		if encoded.Errors != nil {
			return fmt.Errorf("binpackc: %w", encoded.Errors)
		}
	}

	if trained.Errors != nil {
		return fmt.Errorf("binpackc: %w", trained.Errors)
	}
	return nil
}
