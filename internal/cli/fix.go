package cli

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/fixer"
	"github.com/buemura/willie/pkg/types"
)

func newFixCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "fix [path]",
		Short: "Apply auto-fixes once",
		Long: `Scans the path once and applies every fix that can be made safely.
Fixed files get Willie's provenance comment unless --no-provenance is set.`,
		Example: `  willie fix .
  willie fix ./src --dry-run`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			banner(out)
			say(out, headingColor, "[*] APPLYING FIXES...\n")

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
			defer cancel()

			results, outcome, err := a.eng.Fix(ctx, pathArg(args), dryRun)
			if err != nil {
				return err
			}

			fixable := types.Summarize(results).Fixable
			if fixable == 0 {
				say(out, warnColor, "No auto-fixable issues found.")
				return nil
			}
			say(out, infoColor, "Found %d auto-fixable issues.\n", fixable)
			printFileFixes(cmd, outcome)

			if outcome.DryRun {
				say(out, warnColor, "\n[DRY RUN] Would apply %d fixes.", outcome.Applied)
				return nil
			}
			say(out, winColor, "\nApplied %d fixes!", outcome.Applied)
			say(out, dimColor, "// Fixed it, ya numpty. - Willie")
			return outcome.Err()
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be fixed without changing files")
	return cmd
}

func printFileFixes(cmd *cobra.Command, outcome fixer.Outcome) {
	out := cmd.OutOrStdout()
	for _, f := range outcome.Files {
		name := filepath.Base(f.Path)
		switch {
		case f.Err != nil:
			say(cmd.ErrOrStderr(), badColor, "  Could not write %s: %v", name, f.Err)
		case outcome.DryRun:
			say(out, warnColor, "  [DRY RUN] Would fix %d issues in %s", f.Fixes, name)
		default:
			say(out, goodColor, "  Fixed %d issues in %s", f.Fixes, name)
		}
	}
}
