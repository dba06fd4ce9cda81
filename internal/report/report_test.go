package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/fxround/go-ascerr/ascerr"
)

func sampleReport() *Report {
	rp := New("0011")
	r := NewResult("baseline", "degenerate", ascerr.Config{N: 1, M: 1, K: 1})
	r.SetExact(0.125)
	r.BitExact = "1/8"
	rp.Add(r)

	r = NewResult("cycles", "cycles", ascerr.Config{N: 100, M: 2, K: 2})
	r.SetSummary(ascerr.Summary{Cycles: 10, Mean: -0.01, StdDev: 0.02, Min: -0.05, Max: 0.03})
	rp.Add(r)
	return rp
}

func TestNewRunID(t *testing.T) {
	a := New("")
	b := New("")
	if _, err := uuid.Parse(a.RunID); err != nil {
		t.Fatalf("RunID %q is not a UUID: %v", a.RunID, err)
	}
	if a.RunID == b.RunID {
		t.Errorf("two reports share RunID %s", a.RunID)
	}
}

func TestWriteTable(t *testing.T) {
	rp := sampleReport()
	var buf bytes.Buffer
	if err := rp.Write(&buf, "table"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), buf.String())
	}
	if lines[0] != "run "+rp.RunID {
		t.Errorf("first line = %q", lines[0])
	}
	// Columns are aligned: CONFIG starts at the same offset everywhere.
	col := strings.Index(lines[1], "CONFIG")
	if strings.Index(lines[2], "n=1 m=1 k=1") != col || strings.Index(lines[3], "n=100 m=2 k=2") != col {
		t.Errorf("misaligned table:\n%s", buf.String())
	}
	for _, want := range []string{"0.125", "1/8", "-0.01", "10"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("table lacks %q:\n%s", want, buf.String())
		}
	}
}

func TestWriteYAML(t *testing.T) {
	rp := sampleReport()
	var buf bytes.Buffer
	if err := rp.Write(&buf, "yaml"); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var back Report
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if back.RunID != rp.RunID || back.Seed != "0011" || len(back.Results) != 2 {
		t.Fatalf("decoded report = %+v", back)
	}
	if back.Results[0].Exact == nil || *back.Results[0].Exact != 0.125 || back.Results[0].Simulated != nil {
		t.Errorf("Results[0] = %+v", back.Results[0])
	}
	if back.Results[1].Exact != nil || back.Results[1].Simulated == nil || back.Results[1].Simulated.Cycles != 10 {
		t.Errorf("Results[1] = %+v", back.Results[1])
	}
	if strings.Contains(buf.String(), "bit_exact: \"\"") {
		t.Errorf("empty bit_exact not omitted:\n%s", buf.String())
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	if err := sampleReport().Write(&bytes.Buffer{}, "csv"); err == nil {
		t.Error("Write() accepted format csv")
	}
}
