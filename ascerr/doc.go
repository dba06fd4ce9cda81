// This package estimates the bias of approximate fixed-point
// multipliers that replace exact rounding with the addition of a
// "rounding constant" followed by truncation.
//
// A configuration is characterized by three values: the number of
// multipliers (lanes) n, the number of fractional bits m and the number
// of integer bits k. Inputs range over the S = 2^(m+k) values i*2^-m for
// i in [0,S); the exact product of two inputs has 2m fractional bits.
// Each lane adds one rounding constant (a value in [0,1]) to the exact
// product and truncates the sum to an integer; the bias is the mean
// difference between the truncated result and the exact product.
//
// Rounding constants are produced by a [Strategy]. Some strategies are
// fixed (e.g. [Degenerate], which always uses 0.5, or [Uniform], which
// spreads the constants evenly over [0,1)); others carry a state that
// evolves from one cycle to the next ([Cycles], [Shifter],
// [CyclesWithShuffle], [LFSR]). The state is explicit: it is returned
// by [Strategy.Init], passed to [Strategy.Generate] and returned
// updated, so that a strategy can be exercised in isolation.
//
// A [Model] binds a configuration, a strategy, its state and a random
// source. Two evaluations are provided:
//
//   - [Model.CalculateError] computes the exact mean bias over the whole
//     multiplication table, with one constant per lane.
//   - [Model.SimulateError] samples n input pairs (with replacement) and
//     returns the mean bias over these pairs. Each call is one "cycle":
//     stateful strategies advance by one step, hence successive calls
//     are not independent.
//
// All randomness comes from a deterministic PRNG (SHAKE256) seeded from
// 32 bytes. The seed is read from a caller-provided io.Reader; if the
// reader is nil, then the operating system's RNG is used (through
// crypto/rand.Reader). Using the same seed yields the same results,
// which is what tests rely on.
//
// A Model is not safe for concurrent use. Parallel experiments must use
// one independently constructed Model per goroutine.
package ascerr
