package ascerr

import (
	"fmt"
	mrand "math/rand/v2"
)

// Fixed strategies: the constants are computed once, by Init, and then
// returned unchanged on every cycle.

// Mean and standard deviation of the Normal strategy.
const (
	normalMean   = 0.5
	normalStdDev = 1.0 / 6.0
)

// Degenerate uses 0.5 on every lane, i.e. plain round-half-up.
type Degenerate struct{}

func (Degenerate) Init(cfg Config, _ *mrand.Rand) (State, error) {
	return State{}, nil
}

func (Degenerate) Generate(cfg Config, st State, _ *mrand.Rand) ([]float64, State) {
	c := make([]float64, cfg.N)
	for i := range c {
		c[i] = 0.5
	}
	st.Calls++
	return c, st
}

// Normal draws one constant per lane from a normal distribution of mean
// 0.5 and standard deviation 1/6, clamped to [0,1] and quantized to 2m
// fractional bits.
type Normal struct{}

func (Normal) Init(cfg Config, rng *mrand.Rand) (State, error) {
	buf := make([]float64, cfg.N)
	for i := range buf {
		v := normalMean + rng.NormFloat64()*normalStdDev
		buf[i] = quantize(clamp01(v), 2*cfg.M)
	}
	return State{Buffer: buf}, nil
}

func (Normal) Generate(cfg Config, st State, _ *mrand.Rand) ([]float64, State) {
	st.Calls++
	return constants_of(st.Buffer), st
}

// Uniform spreads the constants evenly over [0,1): lane i uses
// (i mod S)*2^-(m+k), so that each of the S values appears n/S times.
// The number of lanes must be a multiple of S.
type Uniform struct{}

func (Uniform) Init(cfg Config, _ *mrand.Rand) (State, error) {
	size := cfg.Size()
	if cfg.N%size != 0 {
		return State{}, fmt.Errorf("uniform: n = %d is not a multiple of S = %d: %w",
			cfg.N, size, ErrPrecondition)
	}
	buf := make([]float64, cfg.N)
	for i := range buf {
		buf[i] = f64_scaled(int64(i%size), -int(cfg.M+cfg.K))
	}
	return State{Buffer: buf}, nil
}

func (Uniform) Generate(cfg Config, st State, _ *mrand.Rand) ([]float64, State) {
	st.Calls++
	return constants_of(st.Buffer), st
}

// Random draws one uniform constant per lane, quantized to 2m
// fractional bits.
type Random struct{}

func (Random) Init(cfg Config, rng *mrand.Rand) (State, error) {
	buf := make([]float64, cfg.N)
	for i := range buf {
		buf[i] = quantize(uniform(rng), 2*cfg.M)
	}
	return State{Buffer: buf}, nil
}

func (Random) Generate(cfg Config, st State, _ *mrand.Rand) ([]float64, State) {
	st.Calls++
	return constants_of(st.Buffer), st
}

// Fixed uses caller-provided constants, one per lane, each in [0,1].
type Fixed struct {
	Constants []float64
}

func (f Fixed) Init(cfg Config, _ *mrand.Rand) (State, error) {
	if len(f.Constants) != cfg.N {
		return State{}, fmt.Errorf("fixed: %d constants for n = %d: %w",
			len(f.Constants), cfg.N, ErrPrecondition)
	}
	for i, c := range f.Constants {
		if !(c >= 0 && c <= 1) {
			return State{}, fmt.Errorf("fixed: constant %d = %v is not in [0,1]: %w",
				i, c, ErrPrecondition)
		}
	}
	return State{Buffer: constants_of(f.Constants)}, nil
}

func (Fixed) Generate(cfg Config, st State, _ *mrand.Rand) ([]float64, State) {
	st.Calls++
	return constants_of(st.Buffer), st
}
