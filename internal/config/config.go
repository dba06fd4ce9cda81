package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/fxround/go-ascerr/ascerr"
)

// Evaluation modes of an experiment
const (
	ModeExact    = "exact"
	ModeSimulate = "simulate"
	ModeBoth     = "both"
)

// Output formats
const (
	OutputTable = "table"
	OutputYAML  = "yaml"
)

// Environment variables overriding the file defaults
const (
	EnvSeed   = "ASCERR_SEED"
	EnvOutput = "ASCERR_OUTPUT"
)

const defaultCycles = 1000

// File holds a complete experiment file
type File struct {
	Defaults    Defaults     `toml:"defaults"`
	Experiments []Experiment `toml:"experiment"`
}

// Defaults holds settings shared by all experiments of a file
type Defaults struct {
	Seed   string `toml:"seed"`   // hex encoded; empty means OS randomness
	Output string `toml:"output"` // table or yaml
	Cycles int    `toml:"cycles"` // simulation cycles when an experiment sets none
}

// Experiment describes one model and how to evaluate it
type Experiment struct {
	Name     string `toml:"name"`
	Strategy string `toml:"strategy"`
	N        int    `toml:"n"`
	M        uint   `toml:"m"`
	K        uint   `toml:"k"`
	Mode     string `toml:"mode"`
	BitExact bool   `toml:"bit_exact"`
	Cycles   int    `toml:"cycles"`

	// Strategy parameters
	IterationsPerArray int       `toml:"iterations_per_carray"`
	NumConstants       int       `toml:"num_constants"`
	Constants          []float64 `toml:"constants"`
}

// Load loads an experiment file from disk
func Load(path string) (*File, error) {
	path = os.ExpandEnv(path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var f File
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(&f)
}

// Parse decodes an experiment file held in memory
func Parse(data string) (*File, error) {
	var f File
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return finish(&f)
}

func finish(f *File) (*File, error) {
	f.applyDefaults()
	f.applyEnv()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// LoadEnv loads .env style files into the process environment. Missing
// files are ignored; without arguments, ./.env is tried.
func LoadEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// applyDefaults sets default values for missing settings
func (f *File) applyDefaults() {
	if f.Defaults.Output == "" {
		f.Defaults.Output = OutputTable
	}
	if f.Defaults.Cycles == 0 {
		f.Defaults.Cycles = defaultCycles
	}
	for i := range f.Experiments {
		e := &f.Experiments[i]
		if e.Name == "" {
			e.Name = fmt.Sprintf("%s-%d", e.Strategy, i+1)
		}
		if e.Mode == "" {
			e.Mode = ModeBoth
		}
		if e.Cycles == 0 {
			e.Cycles = f.Defaults.Cycles
		}
	}
}

// applyEnv lets the environment override the file defaults
func (f *File) applyEnv() {
	if v := os.Getenv(EnvSeed); v != "" {
		f.Defaults.Seed = v
	}
	if v := os.Getenv(EnvOutput); v != "" {
		f.Defaults.Output = v
	}
}

// Validate checks the file without building any model
func (f *File) Validate() error {
	if _, err := DecodeSeed(f.Defaults.Seed); err != nil {
		return err
	}
	if err := ValidateOutput(f.Defaults.Output); err != nil {
		return err
	}
	if len(f.Experiments) == 0 {
		return errors.New("no experiment defined")
	}
	for _, e := range f.Experiments {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("experiment %q: %w", e.Name, err)
		}
	}
	return nil
}

// Validate checks the experiment settings and its multiplier
// configuration. Strategy preconditions are checked when the model is
// built.
func (e Experiment) Validate() error {
	switch e.Mode {
	case ModeExact, ModeSimulate, ModeBoth:
	default:
		return fmt.Errorf("invalid mode %q", e.Mode)
	}
	if e.Cycles < 1 {
		return fmt.Errorf("invalid cycle count %d", e.Cycles)
	}
	if _, err := e.NewStrategy(); err != nil {
		return err
	}
	return e.Config().Validate()
}

// Config returns the multiplier configuration of the experiment
func (e Experiment) Config() ascerr.Config {
	return ascerr.Config{N: e.N, M: e.M, K: e.K}
}

// NewStrategy builds the experiment's constant generation strategy
func (e Experiment) NewStrategy() (ascerr.Strategy, error) {
	return ascerr.NewStrategy(e.Strategy, ascerr.StrategyOptions{
		IterationsPerArray: e.IterationsPerArray,
		NumConstants:       e.NumConstants,
		Constants:          e.Constants,
	})
}

// DecodeSeed decodes a hex seed; an empty string yields a nil seed
func DecodeSeed(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	seed, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return seed, nil
}

// ValidateOutput checks an output format name
func ValidateOutput(format string) error {
	switch format {
	case OutputTable, OutputYAML:
		return nil
	}
	return fmt.Errorf("invalid output format %q", format)
}
