package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/flavor"
	"github.com/buemura/willie/internal/output"
	"github.com/buemura/willie/pkg/types"
)

func newScanCmd(a *app) *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Audit code for issues without making changes",
		Example: `  willie scan .
  willie scan ./src -o json
  willie scan contract.sol --strict`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := pathArg(args)
			out := cmd.OutOrStdout()
			pretty := a.cfg.OutputFormat == "table"

			formatter, err := output.GetFormatter(a.cfg.OutputFormat)
			if err != nil {
				return err
			}

			if pretty {
				banner(out)
				say(out, headingColor, "SCANNING FOR GREASE...\n")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
			defer cancel()

			results, err := a.eng.Scan(ctx, path)
			if err != nil {
				return err
			}
			summary := types.Summarize(results)

			if pretty {
				if len(results) == 0 {
					say(out, warnColor, "No supported files found in: %s", path)
				} else {
					say(out, infoColor, "Found %d files to analyze", len(results))
				}
				if summary.IsClean() {
					say(out, winColor, "\n%s", flavor.Pick(flavor.Victory))
				} else {
					say(out, badColor, "\n%s", flavor.Pick(flavor.Failure))
				}
			}

			if err := formatter.Format(out, results); err != nil {
				return err
			}

			if strict && !summary.IsClean() {
				return fmt.Errorf("%d issues found", summary.TotalIssues)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "exit with an error when any issue is found")
	return cmd
}
