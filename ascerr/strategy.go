package ascerr

import (
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"sort"
)

// ErrUnknownStrategy is returned by [NewStrategy] for an unrecognized
// strategy name.
var ErrUnknownStrategy = errors.New("unknown strategy")

// State is the explicit state of a [Strategy]. Stateless strategies
// leave Buffer empty; stateful ones keep their constants in Buffer
// and/or their shift register in Register. Calls counts the Generate
// invocations since Init.
//
// A State is treated as a value: Generate never modifies the buffer of
// the State it receives, it allocates a new one when the contents
// change. A caller may thus keep an old State and replay from it.
type State struct {
	Buffer   []float64
	Calls    uint64
	Register uint64
}

// Strategy produces the rounding constants of the n lanes.
//
// Init is invoked once, when the model is built; it checks the
// strategy's requirements against the configuration and may draw
// construction-time randomness. Generate is invoked once per cycle; it
// returns n constants and the updated state. The returned slice never
// aliases the state's buffer.
type Strategy interface {
	Init(cfg Config, rng *mrand.Rand) (State, error)
	Generate(cfg Config, st State, rng *mrand.Rand) ([]float64, State)
}

// StrategyOptions holds the strategy-specific parameters used by
// [NewStrategy]. Fields that a strategy does not use are ignored.
type StrategyOptions struct {
	// Cycles between two regenerations (cycles, cycles-shuffle).
	IterationsPerArray int
	// Size of the random pool (broadcast).
	NumConstants int
	// Explicit constants (fixed).
	Constants []float64
}

// Names accepted by NewStrategy.
const (
	KindDegenerate    = "degenerate"
	KindNormal        = "normal"
	KindUniform       = "uniform"
	KindRandom        = "random"
	KindCycles        = "cycles"
	KindShifter       = "shifter"
	KindBroadcast     = "broadcast"
	KindCyclesShuffle = "cycles-shuffle"
	KindFixed         = "fixed"
	KindLFSR          = "lfsr"
)

var strategyMakers = map[string]func(StrategyOptions) Strategy{
	KindDegenerate: func(StrategyOptions) Strategy { return Degenerate{} },
	KindNormal:     func(StrategyOptions) Strategy { return Normal{} },
	KindUniform:    func(StrategyOptions) Strategy { return Uniform{} },
	KindRandom:     func(StrategyOptions) Strategy { return Random{} },
	KindCycles: func(o StrategyOptions) Strategy {
		return Cycles{IterationsPerArray: o.IterationsPerArray}
	},
	KindShifter: func(StrategyOptions) Strategy { return Shifter{} },
	KindBroadcast: func(o StrategyOptions) Strategy {
		return Broadcast{NumConstants: o.NumConstants}
	},
	KindCyclesShuffle: func(o StrategyOptions) Strategy {
		return CyclesWithShuffle{IterationsPerArray: o.IterationsPerArray}
	},
	KindFixed: func(o StrategyOptions) Strategy {
		return Fixed{Constants: append([]float64(nil), o.Constants...)}
	},
	KindLFSR: func(StrategyOptions) Strategy { return LFSR{} },
}

// NewStrategy returns the strategy registered under the given name,
// configured with opts. Parameter values are checked later, by
// Strategy.Init.
func NewStrategy(kind string, opts StrategyOptions) (Strategy, error) {
	mk, ok := strategyMakers[kind]
	if !ok {
		return nil, fmt.Errorf("%q: %w", kind, ErrUnknownStrategy)
	}
	return mk(opts), nil
}

// StrategyNames returns the names accepted by NewStrategy, sorted.
func StrategyNames() []string {
	names := make([]string, 0, len(strategyMakers))
	for k := range strategyMakers {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Return a copy of the buffer (the caller's view of the constants).
func constants_of(buf []float64) []float64 {
	return append([]float64(nil), buf...)
}
