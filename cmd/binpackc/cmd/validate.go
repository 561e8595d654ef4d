package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/binast/binpack/corpus"
)

func newValidateCmd() *cobra.Command {
	validate := &cobra.Command{
		Use:   "validate",
		Short: "Dry-run every script in --script-dir against its schema without training or encoding.",
		RunE:  validateScripts,
	}
	validate.Flags().String("script-dir", "", "Directory of schema.json plus per-script JSON trees (required).")
	validate.MarkFlagRequired("script-dir")
	return validate
}

func validateScripts(cmd *cobra.Command, args []string) error {
	scriptDir := viper.GetString("script-dir")
	if scriptDir == "" {
		return fmt.Errorf("binpackc: --script-dir is required")
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

	if errs := corpus.Validate(s, scripts); errs != nil {
		return fmt.Errorf("binpackc: validation failed:\n%s", errs.Error())
	}
	fmt.Printf("binpackc: %d script(s) valid\n", len(scripts))
	return nil
}
