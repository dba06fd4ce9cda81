package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fxround/go-ascerr/internal/config"
)

func newSimulateCmd(o *options) *cobra.Command {
	f := &modelFlags{}
	var cycles int
	c := &cobra.Command{
		Use:   "simulate",
		Short: "Monte-Carlo estimate of the mean error",
		Long: `Each cycle draws n random input pairs and one cycle of constants and
averages the truncation error over the pairs. The report summarizes
the per-cycle errors.`,
		Args: cobra.NoArgs,
		RunE: func(c *cobra.Command, args []string) error {
			return o.runExperiments(c, []config.Experiment{f.experiment(config.ModeSimulate, cycles)})
		},
	}
	f.register(c)
	c.Flags().IntVarP(&cycles, "cycles", "c", 1000, "number of simulation cycles")
	return c
}
