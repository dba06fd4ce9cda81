package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fxround/go-ascerr/internal/config"
)

func newCalcCmd(o *options) *cobra.Command {
	f := &modelFlags{}
	c := &cobra.Command{
		Use:   "calc",
		Short: "Exhaustive mean error over the multiplication table",
		Long: `Generate one cycle of constants and average the truncation error
over every pair of representable inputs.

With --bit-exact the multipliers are modelled on integers and the
error is reported as an exact fraction as well.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return o.runExperiments(c, []config.Experiment{f.experiment(config.ModeExact, 1)})
		},
	}
	f.register(c)
	c.Flags().BoolVar(&f.bitExact, "bit-exact", false, "evaluate on the integer multiplier model")
	return c
}
