package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/buemura/willie/internal/config"
	"github.com/buemura/willie/internal/engine"
	"github.com/buemura/willie/internal/logging"
	"github.com/buemura/willie/internal/output"
)

// app holds the state every command shares, filled in by PersistentPreRunE.
type app struct {
	configPath string
	cfg        *config.Config
	log        *zap.SugaredLogger
	eng        *engine.Engine
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "willie",
		Short: "Willie: rule-based static analyzer that sorts yer code",
		Long: `Willie scans source files for security, style and hygiene problems,
reports them, and applies the safe auto-fixes over and over until the tree
is clean or he runs out of patience.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				_ = a.log.Sync()
			}
		},
	}

	d := config.Defaults()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configPath, "config", "", "config file (default ./.willie.yaml or ~/.willie.yaml)")
	pf.StringP("output", "o", d.OutputFormat, "output format: "+formatList())
	pf.IntP("concurrency", "c", d.Concurrency, "files analyzed in parallel")
	pf.Duration("timeout", d.Timeout, "overall deadline for a command")
	pf.Int("max-line-length", d.MaxLineLength, "LINE_TOO_LONG threshold")
	pf.IntP("max-iterations", "n", d.MaxIterations, "scrub iteration budget")
	pf.Bool("all-files", d.AllFiles, "analyze every file, not only registered extensions")
	pf.Bool("no-provenance", false, "do not add the FIXED BY WILLIE comment")
	pf.StringSlice("disable", nil, "rule ids to disable (repeatable)")
	pf.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
	pf.BoolP("verbose", "v", false, "verbose output (debug logging)")
	pf.String("profile", "", "named profile from the config file")

	rootCmd.AddCommand(
		newScanCmd(a),
		newFixCmd(a),
		newScrubCmd(a),
		newRulesCmd(a),
		newConfigCmd(a),
		newServeCmd(a),
		newInteractiveCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

func (a *app) setup(cmd *cobra.Command) error {
	var (
		cfg *config.Config
		err error
	)
	if a.configPath != "" {
		cfg, err = config.LoadFromFile(a.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := config.ApplyFlags(cfg, cmd); err != nil {
		return err
	}
	if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
		return err
	}

	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	log.Debugw("config loaded", "output", cfg.OutputFormat, "concurrency", cfg.Concurrency, "max_iterations", cfg.MaxIterations)

	a.cfg = cfg
	a.log = log
	a.eng = engine.New(*cfg, engine.WithLogger(log))
	return nil
}

// timeout returns the configured command deadline, or a day when unset.
func (a *app) timeout() time.Duration {
	if a.cfg.Timeout <= 0 {
		return 24 * time.Hour
	}
	return a.cfg.Timeout
}

// Execute runs the root command.
func Execute() error {
	return newRootCmd().Execute()
}
