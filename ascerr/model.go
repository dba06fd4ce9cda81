package ascerr

import (
	"fmt"
	"io"
	"math"
	"math/big"
	mrand "math/rand/v2"
)

// Model evaluates the bias of n multipliers using the rounding
// constants of a given strategy. It owns the strategy state and the
// random generator; it is not safe for concurrent use.
type Model struct {
	cfg      Config
	strategy Strategy
	state    State
	rng      *mrand.Rand
	space    []float64
}

// Summary aggregates the results of several simulation cycles.
type Summary struct {
	Cycles int
	Mean   float64
	StdDev float64 // sample standard deviation (0 for a single cycle)
	Min    float64
	Max    float64
}

// Create a new model.
//
//   - cfg is the multiplier configuration.
//   - s is the constant generation strategy.
//   - rng is the random source (nil to use the OS RNG).
//
// A 32-byte seed is read from rng; all subsequent randomness (strategy
// initialization, constants, sampled inputs) is derived from it. An
// error is returned if the configuration is invalid, if the strategy
// rejects it (ErrPrecondition), or if the random source fails.
func NewModel(cfg Config, s Strategy, rng io.Reader) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r, err := newRandFromReader(rng)
	if err != nil {
		return nil, err
	}
	return newModel(cfg, s, r)
}

// Similar to [NewModel], except that the randomness is derived from an
// explicit seed (of any length); this is meant for reproducible runs.
func NewModelSeeded(cfg Config, s Strategy, seed []byte) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newModel(cfg, s, NewRand(seed))
}

// Inner constructor; cfg is assumed to be valid.
func newModel(cfg Config, s Strategy, r *mrand.Rand) (*Model, error) {
	if s == nil {
		return nil, fmt.Errorf("no strategy: %w", ErrInvalidConfig)
	}
	st, err := s.Init(cfg, r)
	if err != nil {
		return nil, err
	}
	return &Model{
		cfg:      cfg,
		strategy: s,
		state:    st,
		rng:      r,
		space:    InputSpace(cfg.M, cfg.K),
	}, nil
}

// Config returns the model configuration.
func (m *Model) Config() Config {
	return m.cfg
}

// State returns a copy of the current strategy state.
func (m *Model) State() State {
	st := m.state
	st.Buffer = constants_of(st.Buffer)
	return st
}

// GenerateConstants runs the strategy for one cycle and returns the n
// constants.
func (m *Model) GenerateConstants() []float64 {
	c, st := m.strategy.Generate(m.cfg, m.state, m.rng)
	m.state = st
	return c
}

// CalculateError returns the exact mean bias over the whole S×S
// multiplication table. One cycle of constants is generated; the
// constant of each lane applies to every cell of the table.
func (m *Model) CalculateError() float64 {
	table := MultiplicationTable(m.space)
	return calculate_error(table, m.GenerateConstants())
}

// SimulateError samples n input pairs (with replacement), generates one
// cycle of constants (one per pair) and returns the mean bias over the
// n pairs.
func (m *Model) SimulateError() float64 {
	products := sample_products(m.space, m.cfg.N, m.rng)
	return simulate_error(products, m.GenerateConstants())
}

// Run calls SimulateError for the given number of cycles and
// aggregates the results.
func (m *Model) Run(cycles int) Summary {
	var sum Summary
	if cycles < 1 {
		return sum
	}
	// Welford's running mean and variance.
	mean, m2 := 0.0, 0.0
	for i := 1; i <= cycles; i++ {
		e := m.SimulateError()
		if i == 1 || e < sum.Min {
			sum.Min = e
		}
		if i == 1 || e > sum.Max {
			sum.Max = e
		}
		d := e - mean
		mean += d / float64(i)
		m2 += d * (e - mean)
	}
	sum.Cycles = cycles
	sum.Mean = mean
	if cycles > 1 {
		sum.StdDev = math.Sqrt(m2 / float64(cycles-1))
	}
	return sum
}

// CalculateErrorExact is like CalculateError, but the evaluation uses
// the bit-exact multiplier model (see [ExactError]). It fails with
// ErrNotQuantized if the generated constants are not 2m-bit fractions.
// The strategy advances by one cycle even on failure.
func (m *Model) CalculateErrorExact() (*big.Rat, error) {
	return ExactError(m.cfg, m.GenerateConstants())
}

// Mean residual over the table, for each lane constant.
func calculate_error(table []float64, constants []float64) float64 {
	// Lanes sharing the same constant share the same table sum.
	sums := make(map[float64]float64)
	total := 0.0
	for _, c := range constants {
		s, ok := sums[c]
		if !ok {
			for _, x := range table {
				s += residual(x, c)
			}
			sums[c] = s
		}
		total += s
	}
	return total / (float64(len(table)) * float64(len(constants)))
}

// Draw n input pairs from space[] (first operands, then second
// operands) and return their products.
func sample_products(space []float64, n int, r *mrand.Rand) []float64 {
	a := make([]int, n)
	for i := range a {
		a[i] = r.IntN(len(space))
	}
	p := make([]float64, n)
	for i := range p {
		p[i] = space[a[i]] * space[r.IntN(len(space))]
	}
	return p
}

// Mean residual of each product with its own constant.
func simulate_error(products []float64, constants []float64) float64 {
	s := 0.0
	for i, x := range products {
		s += residual(x, constants[i])
	}
	return s / float64(len(products))
}
