package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fxround/go-ascerr/ascerr"
	"github.com/fxround/go-ascerr/internal/config"
)

func newRunCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "Evaluate the experiments of a TOML file",
		Long: `Evaluate every [[experiment]] of a TOML file, given as argument or
with --config. Flags and environment variables take precedence over the
file's [defaults].`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(c *cobra.Command, args []string) error {
			return o.runFile(c, args)
		},
	}
}

func (o *options) runFile(c *cobra.Command, args []string) error {
	path := o.cfgFile
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return errors.New("no experiment file given")
	}

	f, err := config.Load(path)
	if err != nil {
		return err
	}
	o.logger.Debug("loaded experiments", "path", path, "count", len(f.Experiments))

	flags := c.Flags()
	if !flags.Changed("seed") && f.Defaults.Seed != "" {
		o.seedHex = f.Defaults.Seed
	}
	if !flags.Changed("output") {
		o.output = f.Defaults.Output
	}
	return o.runExperiments(c, f.Experiments)
}

func newStrategiesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "strategies",
		Short: "List the constant generation strategies",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(c.OutOrStdout(), strings.Join(ascerr.StrategyNames(), "\n"))
			return err
		},
	}
}
