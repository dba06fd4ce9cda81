package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/fxround/go-ascerr/internal/config"
)

// options holds the persistent flags shared by all subcommands
type options struct {
	cfgFile string
	seedHex string
	output  string
	verbose bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:   "ascerr",
		Short: "Bias of fixed-point multipliers rounding with added constants",
		Long: `ascerr estimates the systematic error of approximate fixed-point
multipliers which add a rounding constant to the exact product and
truncate the sum, instead of rounding it.

Commands:
  calc       exhaustive mean error over the whole multiplication table
  simulate   Monte-Carlo estimate over random input pairs
  run        evaluate the experiments of a TOML file
  strategies list the constant generation strategies

The seed (--seed or ASCERR_SEED, hex) makes runs reproducible; a .env
file in the working directory is loaded first.`,
		SilenceUsage:      true,
		PersistentPreRunE: o.setup,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&o.cfgFile, "config", "", "experiment file (TOML)")
	pf.StringVar(&o.seedHex, "seed", "", "hex seed for reproducible runs (default: OS randomness)")
	pf.StringVarP(&o.output, "output", "o", config.OutputTable, "output format: table or yaml")
	pf.BoolVarP(&o.verbose, "verbose", "v", false, "verbose logging")

	root.AddCommand(
		newCalcCmd(o),
		newSimulateCmd(o),
		newRunCmd(o),
		newStrategiesCmd(),
	)
	return root
}

// Execute runs the command line
func Execute() error {
	return newRootCmd().Execute()
}

// setup loads .env, applies environment overrides for flags that were
// not given explicitly, and builds the logger.
func (o *options) setup(cmd *cobra.Command, args []string) error {
	if err := config.LoadEnv(); err != nil {
		return err
	}
	flags := cmd.Flags()
	if v := os.Getenv(config.EnvSeed); v != "" && !flags.Changed("seed") {
		o.seedHex = v
	}
	if v := os.Getenv(config.EnvOutput); v != "" && !flags.Changed("output") {
		o.output = v
	}

	level := slog.LevelInfo
	if o.verbose {
		level = slog.LevelDebug
	}
	o.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	if _, err := config.DecodeSeed(o.seedHex); err != nil {
		return err
	}
	return config.ValidateOutput(o.output)
}
