package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
)

func TestNilOutputManager(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\") error = %v", err)
	}
	if om != nil {
		t.Fatal("NewOutputManager(\"\") should return nil")
	}

	// Every method is a no-op on nil
	if err := om.WriteRun(RunRecord{}); err != nil {
		t.Errorf("WriteRun() error = %v", err)
	}
	if err := om.WriteTrail("x", []components.Cell{{Col: 1}}); err != nil {
		t.Errorf("WriteTrail() error = %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Errorf("WriteConfig() error = %v", err)
	}
	if om.Dir() != "" {
		t.Errorf("Dir() = %q, want empty", om.Dir())
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestOutputManagerWritesHeaderOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager() error = %v", err)
	}

	runs := []RunRecord{
		{RunID: "a", Run: 1, Seed: 7, Outcome: "reached", Steps: 12, RawLen: 12, SimplifiedLen: 9},
		{RunID: "b", Run: 2, Seed: 7, Outcome: "stuck", Steps: 40, Backtracks: 40},
	}
	for _, r := range runs {
		if err := om.WriteRun(r); err != nil {
			t.Fatalf("WriteRun() error = %v", err)
		}
	}
	if err := om.WriteTrail("a", []components.Cell{{Col: 0, Row: 1}, {Col: 1, Row: 1}}); err != nil {
		t.Fatalf("WriteTrail() error = %v", err)
	}
	if err := om.WriteTrail("b", nil); err != nil {
		t.Fatalf("WriteTrail(nil) error = %v", err)
	}
	if err := om.WriteConfig(config.Default()); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "runs.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if n := strings.Count(string(data), "run_id"); n != 1 {
		t.Errorf("runs.csv has %d header lines, want 1", n)
	}

	var got []RunRecord
	if err := gocsv.UnmarshalBytes(data, &got); err != nil {
		t.Fatalf("parsing runs.csv: %v", err)
	}
	if len(got) != 2 || got[0] != runs[0] || got[1] != runs[1] {
		t.Errorf("runs.csv = %+v, want %+v", got, runs)
	}

	trail, err := os.ReadFile(filepath.Join(dir, "trail.csv"))
	if err != nil {
		t.Fatal(err)
	}
	var rows []TrailRow
	if err := gocsv.UnmarshalBytes(trail, &rows); err != nil {
		t.Fatalf("parsing trail.csv: %v", err)
	}
	want := []TrailRow{{RunID: "a", Index: 0, Col: 0, Row: 1}, {RunID: "a", Index: 1, Col: 1, Row: 1}}
	if len(rows) != len(want) || rows[0] != want[0] || rows[1] != want[1] {
		t.Errorf("trail.csv = %+v, want %+v", rows, want)
	}

	if _, err := config.Load(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("written config does not load: %v", err)
	}
}
