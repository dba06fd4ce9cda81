package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fxround/go-ascerr/ascerr"
	"github.com/fxround/go-ascerr/internal/config"
	"github.com/fxround/go-ascerr/internal/report"
)

// modelFlags are the flags describing a single experiment on the
// command line
type modelFlags struct {
	strategy           string
	n                  int
	m, k               uint
	iterationsPerArray int
	numConstants       int
	constants          []float64
	bitExact           bool
}

func (f *modelFlags) register(c *cobra.Command) {
	fs := c.Flags()
	fs.StringVarP(&f.strategy, "strategy", "s", ascerr.KindDegenerate, "constant generation strategy (see 'ascerr strategies')")
	fs.IntVarP(&f.n, "lanes", "n", 1, "number of multipliers fed per cycle")
	fs.UintVarP(&f.m, "frac-bits", "m", 2, "fractional bits of each input")
	fs.UintVarP(&f.k, "int-bits", "k", 2, "integer bits of each input")
	fs.IntVar(&f.iterationsPerArray, "iterations-per-carray", 1, "cycles between regenerations (cycles, cycles-shuffle)")
	fs.IntVar(&f.numConstants, "num-constants", 1, "size of the broadcast pool (broadcast)")
	fs.Float64SliceVar(&f.constants, "constants", nil, "one constant per lane (fixed)")
}

func (f *modelFlags) experiment(mode string, cycles int) config.Experiment {
	return config.Experiment{
		Name:               f.strategy,
		Strategy:           f.strategy,
		N:                  f.n,
		M:                  f.m,
		K:                  f.k,
		Mode:               mode,
		BitExact:           f.bitExact,
		Cycles:             cycles,
		IterationsPerArray: f.iterationsPerArray,
		NumConstants:       f.numConstants,
		Constants:          f.constants,
	}
}

// newModel builds the model of an experiment. With a seed, the
// experiment name is appended to it so that experiments of one run
// draw from distinct streams.
func newModel(e config.Experiment, seed []byte) (*ascerr.Model, error) {
	s, err := e.NewStrategy()
	if err != nil {
		return nil, err
	}
	if seed == nil {
		return ascerr.NewModel(e.Config(), s, nil)
	}
	es := make([]byte, 0, len(seed)+len(e.Name))
	es = append(es, seed...)
	es = append(es, e.Name...)
	return ascerr.NewModelSeeded(e.Config(), s, es)
}

func (o *options) evaluate(e config.Experiment, seed []byte) (report.Result, error) {
	res := report.NewResult(e.Name, e.Strategy, e.Config())
	m, err := newModel(e, seed)
	if err != nil {
		return res, err
	}

	if e.Mode == config.ModeExact || e.Mode == config.ModeBoth {
		if e.BitExact {
			r, err := m.CalculateErrorExact()
			if err != nil {
				return res, err
			}
			v, _ := r.Float64()
			res.SetExact(v)
			res.BitExact = r.RatString()
		} else {
			res.SetExact(m.CalculateError())
		}
		o.logger.Debug("exact evaluation", "experiment", e.Name, "error", *res.Exact)
	}

	if e.Mode == config.ModeSimulate || e.Mode == config.ModeBoth {
		sum := m.Run(e.Cycles)
		res.SetSummary(sum)
		o.logger.Debug("simulation", "experiment", e.Name, "cycles", sum.Cycles, "mean", sum.Mean, "stddev", sum.StdDev)
	}
	return res, nil
}

// runExperiments evaluates the experiments in order and writes the
// report to the command's output.
func (o *options) runExperiments(c *cobra.Command, exps []config.Experiment) error {
	seed, err := config.DecodeSeed(o.seedHex)
	if err != nil {
		return err
	}

	rp := report.New(o.seedHex)
	for _, e := range exps {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("experiment %q: %w", e.Name, err)
		}
		o.logger.Debug("evaluating", "experiment", e.Name, "strategy", e.Strategy, "config", e.Config().String(), "mode", e.Mode)
		res, err := o.evaluate(e, seed)
		if err != nil {
			return fmt.Errorf("experiment %q: %w", e.Name, err)
		}
		rp.Add(res)
	}
	o.logger.Info("run complete", "run_id", rp.RunID, "experiments", len(exps))
	return rp.Write(c.OutOrStdout(), o.output)
}
