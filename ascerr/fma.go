package ascerr

import (
	"errors"
	"fmt"
	"math/big"
)

// Bit-exact model of the constant fused multiply-add.
//
// Operands are (m+k)-bit unsigned integers a and b, standing for a*2^-m
// and b*2^-m. Their product a*b has 2m fractional bits. The rounding
// constant is a 2m-bit integer c, injected into the fractional columns
// of the partial-product reduction; the multiplier output is the integer
// part of the sum:
//
//	fma_trunc(a, b, c) = (a*b + c) >> 2m

// ErrNotQuantized is returned by [ExactError] when a constant cannot be
// represented as a 2m-bit integer, i.e. is not a multiple of 2^-2m in
// [0,1).
var ErrNotQuantized = errors.New("constant is not a 2m-bit fraction")

// 2^b - 1
func mask_u64(b uint) uint64 {
	return (uint64(1) << b) - 1
}

// Truncated output of the constant FMA, for m fractional bits.
func fma_trunc(a, b, c uint64, m uint) uint64 {
	fb := 2 * m
	return (a*b + (c & mask_u64(fb))) >> fb
}

// Sum, over the whole S×S table, of the residual numerators (over
// 2^2m) for constant c.
func fma_table_sum(size uint64, c uint64, m uint) int64 {
	fb := 2 * m
	s := int64(0)
	for a := uint64(0); a < size; a++ {
		for b := uint64(0); b < size; b++ {
			p := a * b
			s += int64(fma_trunc(a, b, c, m)<<fb) - int64(p)
		}
	}
	return s
}

// ExactError computes the exhaustive mean bias of the configuration for
// the provided constants (one per lane) with integer arithmetic, and
// returns it as an exact rational. Every constant must be a multiple of
// 2^-2m in [0,1).
func ExactError(cfg Config, constants []float64) (*big.Rat, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(constants) != cfg.N {
		return nil, fmt.Errorf("%d constants for n = %d: %w",
			len(constants), cfg.N, ErrInvalidConfig)
	}
	fb := 2 * cfg.M
	size := uint64(cfg.Size())

	// Lanes sharing the same constant share the same table sum.
	sums := make(map[uint64]int64)
	total := new(big.Int)
	for i, c := range constants {
		v, ok := numerator(c, fb)
		if !ok || v > mask_u64(fb) {
			return nil, fmt.Errorf("constant %d = %v: %w", i, c, ErrNotQuantized)
		}
		s, ok := sums[v]
		if !ok {
			s = fma_table_sum(size, v, cfg.M)
			sums[v] = s
		}
		total.Add(total, big.NewInt(s))
	}

	// Denominator: S^2 * n * 2^2m
	den := new(big.Int).SetUint64(size * size)
	den.Mul(den, big.NewInt(int64(cfg.N)))
	den.Lsh(den, fb)
	return new(big.Rat).SetFrac(total, den), nil
}
