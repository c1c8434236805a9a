package cli

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/analyzer"
)

func newRulesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List rule sets, their extensions and checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Set", "Extensions", "Check", "Rule IDs", "Description"})
			table.SetAutoWrapText(false)
			table.SetBorder(false)
			table.SetColumnSeparator("│")

			appendRules(table, "common", "*", analyzer.CommonRules(a.cfg.MaxLineLength))
			for _, set := range a.eng.Registry().Sets() {
				exts := strings.Join(set.Extensions, " ")
				if exts == "" {
					exts = "(fallback)"
				}
				appendRules(table, set.Name, exts, set.Rules)
			}

			table.Render()
			return nil
		},
	}
}

func appendRules(table *tablewriter.Table, set, exts string, rules []analyzer.Rule) {
	for i, r := range rules {
		name, ext := set, exts
		if i > 0 {
			name, ext = "", ""
		}
		table.Append([]string{name, ext, r.Name, strings.Join(r.IDs, ", "), r.Description})
	}
}
