package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of Willie",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			banner(out)
			say(out, infoColor, "willie version %s (%s)", version.Version, version.Codename)
		},
	}
}
