package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/tui"
)

func newInteractiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "interactive",
		Short: "Launch interactive TUI mode",
		Long:  "Start an interactive terminal UI for scanning, fixing and scrubbing a path.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return tui.Run(a.eng, a.cfg.MaxIterations)
		},
	}
}
