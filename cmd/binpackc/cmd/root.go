// Package cmd implements binpackc's command tree: a Cobra root plus
// subcommands for running a corpus analysis/encode pass and for
// dry-run schema validation.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/binast/binpack/internal/blog"
)

// Execute builds and runs the binpackc command tree, exiting the process
// with status 1 on any usage or fatal error (§6's CLI exit-code contract),
// matching the gnmidiff/cmd/root.go Execute idiom.
func Execute() {
	rootCmd := &cobra.Command{
		Use:   "binpackc",
		Short: "binpackc trains context-sensitive probability models over a BinAST corpus and entropy-codes scripts against them",
	}

	cfgFile := rootCmd.PersistentFlags().String("config_file", "", "Path to config file.")
	debug := rootCmd.PersistentFlags().Bool("debug", false, "Enable verbose trace logging.")
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *cfgFile != "" {
			viper.SetConfigFile(*cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return fmt.Errorf("error reading config: %w", err)
			}
		}
		viper.BindPFlags(cmd.Flags())
		viper.AutomaticEnv()
		blog.SetDebug(*debug)
		return nil
	}

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newValidateCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
