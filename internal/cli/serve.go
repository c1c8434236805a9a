package cli

import (
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/buemura/willie/internal/web"
)

func newServeCmd(a *app) *cobra.Command {
	var (
		addr string
		root string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Willie HTTP job API",
		Long:  "Serves a REST API for running scan and scrub jobs in the background.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			abs, err := filepath.Abs(root)
			if err != nil {
				return err
			}

			s := web.NewServer(addr, a.eng,
				web.WithLogger(a.log),
				web.WithRoot(abs),
				web.WithMaxIterations(a.cfg.MaxIterations),
				web.WithMaxLineLength(a.cfg.MaxLineLength),
				web.WithJobTimeout(a.cfg.Timeout),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			say(cmd.OutOrStdout(), infoColor, "Willie API listening on %s (root %s)", addr, abs)
			return s.Start(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:3000", "listen address (host:port)")
	cmd.Flags().StringVar(&root, "root", ".", "directory job paths are confined to")
	return cmd
}
