// Package cmd implements the CLI commands for helpdoc using Cobra.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/helpdoc/config"
)

var flagConfig string

var rootCmd = &cobra.Command{
	Use:   "helpdoc",
	Short: "helpdoc — compile TMBASIC documentation into help text and HTML",
	Long: `helpdoc compiles topic and procedure sources written in the documentation
markup into the aggregate help file used by the text-mode help viewer and a
static HTML site, optionally with Markdown, a JSON manifest and a PDF manual.

Usage:
  helpdoc build [flags]
  helpdoc check [html-dir] [flags]
  helpdoc list [flags]`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: "+config.DefaultFile+" if present)")
	RegisterLoggingFlags(rootCmd)
}

// loadConfig reads the configuration selected by --config. Relative paths
// in an explicitly named file are taken relative to that file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}
	if flagConfig != "" {
		cfg.Resolve(filepath.Dir(flagConfig))
	}
	return cfg, nil
}

// Execute runs the root command. An interrupt cancels the running command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
