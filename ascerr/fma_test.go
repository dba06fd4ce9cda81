package ascerr

import (
	"errors"
	"math/big"
	"testing"
)

func TestFMATrunc(t *testing.T) {
	// m = 2: a and b carry 2 fractional bits, products and constants 4.
	for a := uint64(0); a < 32; a++ {
		for b := uint64(0); b < 32; b++ {
			for c := uint64(0); c < 16; c++ {
				x := f64_scaled(int64(a*b), -4)
				exp := uint64(f64_trunc(x + f64_scaled(int64(c), -4)))
				if r := fma_trunc(a, b, c, 2); r != exp {
					t.Fatalf("ERR: a=%d b=%d c=%d -> %d (exp: %d)\n", a, b, c, r, exp)
				}
			}
		}
	}
	// Only the low 2m bits of the constant reach the adder.
	if r := fma_trunc(1, 1, 0x13, 2); r != fma_trunc(1, 1, 0x03, 2) {
		t.Fatalf("ERR: constant not masked: %d\n", r)
	}
}

func TestExactErrorMatchesFloat(t *testing.T) {
	for _, tc := range []struct {
		cfg      Config
		strategy Strategy
	}{
		{Config{N: 1, M: 1, K: 1}, Degenerate{}},
		{Config{N: 5, M: 3, K: 1}, Degenerate{}},
		{Config{N: 16, M: 2, K: 2}, Uniform{}},
		{Config{N: 16, M: 2, K: 1}, Uniform{}},
		{Config{N: 40, M: 2, K: 3}, Random{}},
		{Config{N: 30, M: 2, K: 1}, LFSR{}},
		{Config{N: 2, M: 1, K: 2}, Fixed{Constants: []float64{0, 0.75}}},
	} {
		m1 := mustModel(t, tc.cfg, tc.strategy, "exact")
		m2 := mustModel(t, tc.cfg, tc.strategy, "exact")
		r, err := m1.CalculateErrorExact()
		if err != nil {
			t.Fatalf("ERR: %v %T -> %v\n", tc.cfg, tc.strategy, err)
		}
		f := m2.CalculateError()
		if x, _ := r.Float64(); x != f {
			t.Fatalf("ERR: %v %T: exact %v (%s) vs float %v\n",
				tc.cfg, tc.strategy, x, r.RatString(), f)
		}
	}

	r, err := ExactError(Config{N: 1, M: 1, K: 1}, []float64{0.5})
	if err != nil {
		t.Fatal(err)
	}
	if r.Cmp(big.NewRat(1, 8)) != 0 {
		t.Fatalf("ERR: m=1 k=1 c=0.5 -> %s (exp: 1/8)\n", r.RatString())
	}
}

func TestExactErrorRejects(t *testing.T) {
	cfg := Config{N: 2, M: 1, K: 1}
	for _, c := range [][]float64{
		{0.5, 1},     // 1.0 does not fit on 2m bits
		{0.5, 0.3},   // off-grid
		{0.125, 0.5}, // finer than 2^-2m
	} {
		if _, err := ExactError(cfg, c); !errors.Is(err, ErrNotQuantized) {
			t.Fatalf("ERR: %v -> %v\n", c, err)
		}
	}
	if _, err := ExactError(Config{N: 1, M: 0, K: 2}, []float64{0.5}); !errors.Is(err, ErrNotQuantized) {
		t.Fatalf("ERR: m=0 c=0.5 -> %v\n", err)
	}
	if _, err := ExactError(cfg, []float64{0.5}); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("ERR: length mismatch -> %v\n", err)
	}

	m := mustModel(t, Config{N: 8, M: 2, K: 2}, Cycles{IterationsPerArray: 2}, "exact")
	if _, err := m.CalculateErrorExact(); !errors.Is(err, ErrNotQuantized) {
		t.Fatalf("ERR: unquantized cycles constants -> %v\n", err)
	}
}
