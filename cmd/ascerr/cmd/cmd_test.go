package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/fxround/go-ascerr/ascerr"
	"github.com/fxround/go-ascerr/internal/config"
	"github.com/fxround/go-ascerr/internal/report"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv(config.EnvSeed, "")
	t.Setenv(config.EnvOutput, "")

	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func decode(t *testing.T, out string) report.Report {
	t.Helper()
	var rp report.Report
	if err := yaml.Unmarshal([]byte(out), &rp); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v\n%s", err, out)
	}
	return rp
}

func TestCalc(t *testing.T) {
	out, err := execute(t, "calc", "-s", "degenerate", "-n", "1", "-m", "1", "-k", "1", "--bit-exact", "-o", "yaml")
	if err != nil {
		t.Fatalf("calc error = %v", err)
	}
	rp := decode(t, out)
	if len(rp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(rp.Results))
	}
	r := rp.Results[0]
	if r.Exact == nil || *r.Exact != 0.125 || r.BitExact != "1/8" {
		t.Errorf("result = %+v", r)
	}
	if r.Simulated != nil {
		t.Errorf("calc ran a simulation: %+v", r.Simulated)
	}
}

func TestCalcFixedTable(t *testing.T) {
	out, err := execute(t, "calc", "-s", "fixed", "-n", "2", "-m", "1", "-k", "1", "--constants", "0,0")
	if err != nil {
		t.Fatalf("calc error = %v", err)
	}
	if !strings.Contains(out, "-0.25") || !strings.Contains(out, "n=2 m=1 k=1") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestCalcPrecondition(t *testing.T) {
	// 6 lanes cannot be split evenly over the 4 input values.
	_, err := execute(t, "calc", "-s", "uniform", "-n", "6", "-m", "1", "-k", "1")
	if !errors.Is(err, ascerr.ErrPrecondition) {
		t.Errorf("calc error = %v, want ErrPrecondition", err)
	}
}

func TestSimulateSeeded(t *testing.T) {
	args := []string{"simulate", "-s", "random", "-n", "64", "-m", "2", "-k", "2", "-c", "20", "--seed", "c0ffee", "-o", "yaml"}
	out1, err := execute(t, args...)
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}
	out2, err := execute(t, args...)
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}

	a, b := decode(t, out1), decode(t, out2)
	if a.RunID == b.RunID {
		t.Errorf("runs share RunID %s", a.RunID)
	}
	if a.Seed != "c0ffee" {
		t.Errorf("Seed = %q", a.Seed)
	}
	sa, sb := a.Results[0].Simulated, b.Results[0].Simulated
	if sa == nil || sb == nil || *sa != *sb {
		t.Fatalf("seeded runs differ: %+v vs %+v", sa, sb)
	}
	if sa.Cycles != 20 || a.Results[0].Exact != nil {
		t.Errorf("result = %+v", a.Results[0])
	}
}

func TestSeedFromEnv(t *testing.T) {
	args := []string{"simulate", "-n", "8", "-c", "5", "-s", "normal", "-o", "yaml"}
	out1, err := execute(t, append(args, "--seed", "abcd")...)
	if err != nil {
		t.Fatalf("simulate error = %v", err)
	}

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	t.Setenv(config.EnvSeed, "abcd")
	if err := root.Execute(); err != nil {
		t.Fatalf("simulate error = %v", err)
	}

	a, b := decode(t, out1), decode(t, out.String())
	if b.Seed != "abcd" || *a.Results[0].Simulated != *b.Results[0].Simulated {
		t.Errorf("env seed not applied: %+v vs %+v", a, b)
	}
}

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "experiments.toml")
	data := `
[defaults]
seed = "0102"
output = "yaml"
cycles = 10

[[experiment]]
name = "baseline"
strategy = "degenerate"
n = 1
m = 1
k = 1
mode = "exact"
bit_exact = true

[[experiment]]
strategy = "lfsr"
n = 16
m = 2
k = 2
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "run", path)
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	rp := decode(t, out)
	if rp.Seed != "0102" || len(rp.Results) != 2 {
		t.Fatalf("report = %+v", rp)
	}
	if r := rp.Results[0]; r.Name != "baseline" || r.BitExact != "1/8" {
		t.Errorf("Results[0] = %+v", r)
	}
	if r := rp.Results[1]; r.Name != "lfsr-2" || r.Exact == nil || r.Simulated == nil || r.Simulated.Cycles != 10 {
		t.Errorf("Results[1] = %+v", r)
	}

	// --config and an explicit --output override the file.
	out, err = execute(t, "run", "--config", path, "-o", "table")
	if err != nil {
		t.Fatalf("run error = %v", err)
	}
	if !strings.HasPrefix(out, "run ") || !strings.Contains(out, "lfsr-2") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := execute(t, "run"); err == nil {
		t.Error("run accepted no file")
	}
	if _, err := execute(t, "run", filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("run accepted a missing file")
	}
	if _, err := execute(t, "calc", "-o", "csv"); err == nil {
		t.Error("calc accepted output csv")
	}
	if _, err := execute(t, "calc", "--seed", "zz"); err == nil {
		t.Error("calc accepted seed zz")
	}
	if _, err := execute(t, "simulate", "-c", "0"); err == nil {
		t.Error("simulate accepted 0 cycles")
	}
}

func TestStrategies(t *testing.T) {
	out, err := execute(t, "strategies")
	if err != nil {
		t.Fatalf("strategies error = %v", err)
	}
	names := strings.Fields(out)
	if len(names) != len(ascerr.StrategyNames()) {
		t.Errorf("listed %v", names)
	}
}
