package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Render the gallery without writing it",
	Long: `Check runs the whole build except the final write. It fails on a missing
fragment or an unresolved placeholder and lists mapping keys the template
never uses.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cmd.ErrOrStderr(), flagVerbose)

	p, err := prepareGallery(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "✓ %s: %d placeholders resolved from %d mapping keys\n",
		cfg.Template, len(p.Placeholders), len(p.Mapping))
	for _, key := range p.Unused() {
		fmt.Fprintf(out, "  unused: {%s}\n", key)
	}
	return nil
}
