// Package cmd implements the CLI commands for gallerygen using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gaurav-prasanna/gallerygen/core/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Flag variables shared by every command.
var (
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "gallerygen",
	Short: "gallerygen — fill a Markdown gallery template with generated entries and HTML fragments",
	Long: `gallerygen reads a Markdown template containing {key} placeholders, builds a
replacement for every gallery item (a generated snippet or an HTML fragment file),
substitutes them in a single pass, strips the legacy <!DOCTYPE html> marker and
writes the result.

Running without a subcommand is the same as "gallerygen build".

Usage:
  gallerygen [build] [flags]
  gallerygen keys
  gallerygen check
  gallerygen config`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runBuild,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: ./"+config.DefaultFile+" if present)")
	pf.String("template", "", "Template path (overrides config)")
	pf.String("output", "", "Output path (overrides config)")
	pf.String("format", "", "Output format: markdown, json or pdf (overrides config)")
	pf.String("base_dir", "", "Directory relative paths resolve against (overrides config)")
	pf.String("title", "", "Document title for json/pdf output (overrides config)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every build step")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, err
	}

	if err := applyFlagOverrides(cfg, cmd.Flags()); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// applyFlagOverrides copies every explicitly set path flag over the config value.
func applyFlagOverrides(cfg *config.Config, flags *pflag.FlagSet) error {
	overrides := []struct {
		name string
		dst  *string
	}{
		{"template", &cfg.Template},
		{"output", &cfg.Output},
		{"format", &cfg.Format},
		{"base_dir", &cfg.BaseDir},
		{"title", &cfg.Title},
	}
	for _, o := range overrides {
		if !flags.Changed(o.name) {
			continue
		}
		val, err := flags.GetString(o.name)
		if err != nil {
			return fmt.Errorf("--%s: %w", o.name, err)
		}
		*o.dst = val
	}
	return nil
}

// newLogger returns a text logger on w; verbose enables debug records.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
