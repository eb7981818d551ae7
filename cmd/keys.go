package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/gaurav-prasanna/gallerygen/core/gallery"
	"github.com/spf13/cobra"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the placeholder keys the gallery provides",
	Long: `Keys prints one line per gallery item: the placeholder key to use in the
template, the item's label and where its text comes from.`,
	Args: cobra.NoArgs,
	RunE: runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	items, err := collectItems(cfg)
	if err != nil {
		return err
	}
	entries, err := gallery.Entries(cfg.KeyPrefix, items)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	for _, e := range entries {
		source := string(e.Source)
		if e.Ref != "" {
			source += " " + e.Ref
		}
		fmt.Fprintf(tw, "{%s}\t%s\t%s\n", e.Key, e.Label, source)
	}
	return tw.Flush()
}
