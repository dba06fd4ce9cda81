package ascerr

import (
	"errors"
	"fmt"
)

// MaxWidth is the largest supported total input width m+k. The
// exhaustive evaluation walks an S×S table with S = 2^(m+k), hence the
// table has at most 2^24 cells.
const MaxWidth = 12

var (
	// ErrInvalidConfig is returned for configurations that cannot be
	// evaluated (no lanes, inputs too wide).
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrPrecondition is returned when a strategy's structural
	// requirement is not met by the configuration or its parameters.
	ErrPrecondition = errors.New("strategy precondition violated")
)

// Config describes the simulated multipliers.
type Config struct {
	N int  // number of multipliers (lanes)
	M uint // fractional bits
	K uint // integer bits
}

// Validate checks that the configuration can be evaluated.
func (cfg Config) Validate() error {
	switch {
	case cfg.N < 1:
		return fmt.Errorf("n = %d, must be at least 1: %w", cfg.N, ErrInvalidConfig)
	case cfg.M+cfg.K > MaxWidth:
		return fmt.Errorf("m + k = %d, must be at most %d: %w",
			cfg.M+cfg.K, MaxWidth, ErrInvalidConfig)
	}
	return nil
}

// Size returns S = 2^(m+k), the number of representable inputs.
func (cfg Config) Size() int {
	return 1 << (cfg.M + cfg.K)
}

// String returns a compact description such as "n=8 m=2 k=1".
func (cfg Config) String() string {
	return fmt.Sprintf("n=%d m=%d k=%d", cfg.N, cfg.M, cfg.K)
}

// InputSpace returns the S = 2^(m+k) representable inputs, in
// increasing order: value i is i*2^-m.
func InputSpace(m, k uint) []float64 {
	size := 1 << (m + k)
	space := make([]float64, size)
	for i := range space {
		space[i] = f64_scaled(int64(i), -int(m))
	}
	return space
}

// MultiplicationTable returns the row-major table of all products
// space[i]*space[j].
func MultiplicationTable(space []float64) []float64 {
	size := len(space)
	table := make([]float64, size*size)
	for i, x := range space {
		row := table[i*size : (i+1)*size]
		for j, y := range space {
			row[j] = x * y
		}
	}
	return table
}
