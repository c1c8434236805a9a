package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/flavor"
	"github.com/buemura/willie/internal/output"
	"github.com/buemura/willie/internal/scrub"
)

func newScrubCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "scrub [path]",
		Short: "Fix until clean or out of iterations",
		Long: `Runs scan and fix cycles until no issues remain, nothing left is
auto-fixable, or --max-iterations rounds have run.`,
		Example: `  willie scrub .
  willie scrub ./src --max-iterations 5`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			limit := a.cfg.MaxIterations
			banner(out)
			say(out, headingColor, "[*] SCRUBBIN' MODE ACTIVATED!\n")

			ctx, cancel := context.WithTimeout(cmd.Context(), a.timeout())
			defer cancel()

			rule := strings.Repeat("=", 50)
			observe := scrub.WithObserver(func(r scrub.Round) {
				say(out, dimColor, "\n%s", rule)
				say(out, roundColor, "SCRUB ITERATION %d/%d", r.Iteration, limit)
				say(out, dimColor, "%s\n", rule)
				say(out, infoColor, "   Issues: %d | Fixable: %d", r.Issues, r.Fixable)
				say(out, dimColor, "   %s", flavor.Pick(flavor.Scrub))
				say(out, goodColor, "   Applied %d fixes this round.", r.Applied)
			})

			report, err := a.eng.Scrub(ctx, pathArg(args), limit, observe)
			if err != nil && !report.State.Terminal() {
				return err
			}

			formatter, ferr := output.GetFormatter(a.cfg.OutputFormat)
			if ferr != nil {
				return ferr
			}
			switch report.State {
			case scrub.StateClean:
				say(out, winColor, "\n100%% CLEAN!")
				say(out, goodColor, "%s", flavor.Pick(flavor.Victory))
			case scrub.StateNoFixableRemaining:
				say(out, warnColor, "\n%d issues found but none are auto-fixable.", report.Summary.TotalIssues)
				if ferr := formatter.Format(out, report.Results); ferr != nil {
					return ferr
				}
				say(out, badColor, "\nFix these manually, ye lazy bum!")
			case scrub.StateExhausted:
				say(out, warnColor, "\nMax iterations reached. %d issues remain.", report.Summary.TotalIssues)
				if ferr := formatter.Format(out, report.Results); ferr != nil {
					return ferr
				}
			}
			return err
		},
	}
}
