package ascerr

import (
	"fmt"
	mrand "math/rand/v2"
)

// Dynamic strategies: the constants change from one cycle to the next,
// modelling registers that are reused by the hardware across cycles.

// Cycles keeps a buffer of n uniform constants and regenerates it every
// IterationsPerArray cycles, starting with the very first one.
type Cycles struct {
	IterationsPerArray int
}

func (c Cycles) Init(cfg Config, _ *mrand.Rand) (State, error) {
	if c.IterationsPerArray < 1 {
		return State{}, fmt.Errorf("cycles: iterations per array = %d, must be at least 1: %w",
			c.IterationsPerArray, ErrPrecondition)
	}
	return State{}, nil
}

func (c Cycles) Generate(cfg Config, st State, rng *mrand.Rand) ([]float64, State) {
	if st.Calls%uint64(c.IterationsPerArray) == 0 {
		st.Buffer = make([]float64, cfg.N)
		fill_uniform(rng, st.Buffer)
	}
	st.Calls++
	return constants_of(st.Buffer), st
}

// CyclesWithShuffle is like Cycles, but on the cycles where the buffer
// is not regenerated, it is randomly permuted.
type CyclesWithShuffle struct {
	IterationsPerArray int
}

func (c CyclesWithShuffle) Init(cfg Config, _ *mrand.Rand) (State, error) {
	if c.IterationsPerArray < 1 {
		return State{}, fmt.Errorf("cycles-shuffle: iterations per array = %d, must be at least 1: %w",
			c.IterationsPerArray, ErrPrecondition)
	}
	return State{}, nil
}

func (c CyclesWithShuffle) Generate(cfg Config, st State, rng *mrand.Rand) ([]float64, State) {
	if st.Calls%uint64(c.IterationsPerArray) == 0 {
		st.Buffer = make([]float64, cfg.N)
		fill_uniform(rng, st.Buffer)
	} else {
		buf := constants_of(st.Buffer)
		rng.Shuffle(len(buf), func(i, j int) {
			buf[i], buf[j] = buf[j], buf[i]
		})
		st.Buffer = buf
	}
	st.Calls++
	return constants_of(st.Buffer), st
}

// Shifter keeps a buffer of n uniform constants. On each cycle, the
// buffer is rotated by one position (the last constant wraps around to
// index 0) and the constant at index 0 is replaced by a fresh one.
type Shifter struct{}

func (Shifter) Init(cfg Config, rng *mrand.Rand) (State, error) {
	buf := make([]float64, cfg.N)
	fill_uniform(rng, buf)
	return State{Buffer: buf}, nil
}

func (Shifter) Generate(cfg Config, st State, rng *mrand.Rand) ([]float64, State) {
	n := len(st.Buffer)
	// Rotation moves st.Buffer[n-1] to index 0, where it is
	// immediately overwritten; only the shift remains visible.
	buf := make([]float64, n)
	copy(buf[1:], st.Buffer[:n-1])
	buf[0] = uniform(rng)
	st.Buffer = buf
	st.Calls++
	return constants_of(buf), st
}

// Broadcast draws NumConstants fresh uniform constants on each cycle and
// repeats them over the n lanes (the last repetition is truncated).
type Broadcast struct {
	NumConstants int
}

func (b Broadcast) Init(cfg Config, _ *mrand.Rand) (State, error) {
	if b.NumConstants < 1 {
		return State{}, fmt.Errorf("broadcast: num constants = %d, must be at least 1: %w",
			b.NumConstants, ErrPrecondition)
	}
	return State{}, nil
}

func (b Broadcast) Generate(cfg Config, st State, rng *mrand.Rand) ([]float64, State) {
	pool := make([]float64, b.NumConstants)
	fill_uniform(rng, pool)
	st.Buffer = tile(pool, cfg.N)
	st.Calls++
	return constants_of(st.Buffer), st
}

// Repeat pool[] until n values are obtained.
func tile(pool []float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = pool[i%len(pool)]
	}
	return out
}

// LFSR feeds each lane from a (2m+1)-bit shift register, initialized to
// 1. The constant of a lane is the low 2m bits of the register, as a
// fraction of 2^2m; the register is clocked once per lane, and its
// value carries over to the next cycle.
type LFSR struct{}

func (LFSR) Init(cfg Config, _ *mrand.Rand) (State, error) {
	return State{Register: 1}, nil
}

func (LFSR) Generate(cfg Config, st State, _ *mrand.Rand) ([]float64, State) {
	width := 2*cfg.M + 1
	c := make([]float64, cfg.N)
	q := st.Register
	for i := range c {
		c[i] = f64_scaled(int64(lfsr_out(q, width)), -int(2*cfg.M))
		q = lfsr_next(q, width)
	}
	st.Register = q
	st.Calls++
	return c, st
}
