package ascerr

import (
	"math"
)

// Floating-point helpers. Inputs and their products are dyadic
// rationals with at most 2*MaxWidth significant bits, hence exactly
// represented as float64 values; with a quantized constant, residuals
// are exact too.

// Given integer i and scale sc, return i*2^sc.
func f64_scaled(i int64, sc int) float64 {
	return math.Ldexp(float64(i), sc)
}

// Round a value toward zero. Operands in this package are never
// negative, so this is also a floor.
func f64_trunc(x float64) float64 {
	return math.Trunc(x)
}

// Residual of one multiplier: truncated (product + constant), minus the
// exact product.
func residual(product float64, c float64) float64 {
	return f64_trunc(product+c) - product
}

// Clamp x into [0,1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// Quantize x (assumed in [0,1]) to a multiple of 2^-bits, rounding
// toward zero.
func quantize(x float64, bits uint) float64 {
	return math.Floor(math.Ldexp(x, int(bits))) / math.Ldexp(1, int(bits))
}

// Get the integer numerator of x over 2^bits; ok is false if x is not
// an exact multiple of 2^-bits.
func numerator(x float64, bits uint) (v uint64, ok bool) {
	y := math.Ldexp(x, int(bits))
	if y < 0 || y != math.Trunc(y) || y >= math.Ldexp(1, 63) {
		return 0, false
	}
	return uint64(y), true
}
