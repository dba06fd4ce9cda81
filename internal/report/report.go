// Package report renders evaluation results, either as an aligned text
// table for terminals or as YAML for further processing.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"

	"github.com/fxround/go-ascerr/ascerr"
)

// Report is the output of one invocation. All results of a run share
// its RunID.
type Report struct {
	RunID   string   `yaml:"run_id"`
	Seed    string   `yaml:"seed,omitempty"`
	Results []Result `yaml:"results"`
}

// Result holds the evaluations of one experiment. Exact, BitExact and
// Simulated are set only for the evaluations that were requested.
type Result struct {
	Name      string     `yaml:"name"`
	Strategy  string     `yaml:"strategy"`
	N         int        `yaml:"n"`
	M         uint       `yaml:"m"`
	K         uint       `yaml:"k"`
	Exact     *float64   `yaml:"exact,omitempty"`
	BitExact  string     `yaml:"bit_exact,omitempty"` // exact rational, e.g. "1/8"
	Simulated *Simulated `yaml:"simulated,omitempty"`
}

// Simulated is the summary of the simulation cycles of an experiment.
type Simulated struct {
	Cycles int     `yaml:"cycles"`
	Mean   float64 `yaml:"mean"`
	StdDev float64 `yaml:"stddev"`
	Min    float64 `yaml:"min"`
	Max    float64 `yaml:"max"`
}

// New starts a report with a fresh run identifier.
func New(seed string) *Report {
	return &Report{RunID: uuid.New().String(), Seed: seed}
}

// NewResult prepares the result record of a configuration.
func NewResult(name, strategy string, cfg ascerr.Config) Result {
	return Result{Name: name, Strategy: strategy, N: cfg.N, M: cfg.M, K: cfg.K}
}

// SetSummary records a simulation summary.
func (r *Result) SetSummary(s ascerr.Summary) {
	r.Simulated = &Simulated{
		Cycles: s.Cycles,
		Mean:   s.Mean,
		StdDev: s.StdDev,
		Min:    s.Min,
		Max:    s.Max,
	}
}

// SetExact records the exhaustive evaluation.
func (r *Result) SetExact(v float64) {
	r.Exact = &v
}

// Add appends a result to the report.
func (rp *Report) Add(r Result) {
	rp.Results = append(rp.Results, r)
}

// Write renders the report in the given format ("table" or "yaml").
func (rp *Report) Write(w io.Writer, format string) error {
	switch format {
	case "table":
		return rp.WriteTable(w)
	case "yaml":
		return rp.WriteYAML(w)
	}
	return fmt.Errorf("unknown output format %q", format)
}

// WriteYAML renders the report as a YAML document.
func (rp *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(rp); err != nil {
		return err
	}
	return enc.Close()
}

var tableHeader = []string{"NAME", "STRATEGY", "CONFIG", "EXACT", "BIT-EXACT", "CYCLES", "MEAN", "STDDEV"}

// WriteTable renders the report as a text table, one row per result.
func (rp *Report) WriteTable(w io.Writer) error {
	rows := [][]string{tableHeader}
	for _, r := range rp.Results {
		rows = append(rows, r.row())
	}

	widths := make([]int, len(tableHeader))
	for _, row := range rows {
		for i, cell := range row {
			if cw := runewidth.StringWidth(cell); cw > widths[i] {
				widths[i] = cw
			}
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "run %s\n", rp.RunID)
	for _, row := range rows {
		for i, cell := range row {
			if i == len(row)-1 {
				sb.WriteString(cell)
			} else {
				sb.WriteString(runewidth.FillRight(cell, widths[i]+2))
			}
		}
		sb.WriteString("\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func (r Result) row() []string {
	row := []string{
		r.Name,
		r.Strategy,
		fmt.Sprintf("n=%d m=%d k=%d", r.N, r.M, r.K),
		"-", "-", "-", "-", "-",
	}
	if r.Exact != nil {
		row[3] = formatFloat(*r.Exact)
	}
	if r.BitExact != "" {
		row[4] = r.BitExact
	}
	if s := r.Simulated; s != nil {
		row[5] = strconv.Itoa(s.Cycles)
		row[6] = formatFloat(s.Mean)
		row[7] = formatFloat(s.StdDev)
	}
	return row
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', 8, 64)
}
