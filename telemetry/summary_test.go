package telemetry

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	records := []RunRecord{
		{Outcome: "reached", Steps: 10, Backtracks: 2, RawLen: 10, SimplifiedLen: 8, OptimalLen: 8},
		{Outcome: "reached", Steps: 20, Backtracks: 4, RawLen: 20, SimplifiedLen: 10, OptimalLen: 5},
		{Outcome: "stuck", Steps: 50, Backtracks: 50, OptimalLen: -1},
		{Outcome: "reached", Steps: 30, Backtracks: 0, RawLen: 12, SimplifiedLen: 12, OptimalLen: 12},
	}

	s := Summarize(records)

	if s.Runs != 4 || s.Reached != 3 || s.Stuck != 1 {
		t.Fatalf("counts = %d/%d/%d, want 4/3/1", s.Runs, s.Reached, s.Stuck)
	}
	if math.Abs(s.SuccessRate-0.75) > 1e-9 {
		t.Errorf("SuccessRate = %v, want 0.75", s.SuccessRate)
	}
	if math.Abs(s.MeanLen-10) > 1e-9 {
		t.Errorf("MeanLen = %v, want 10", s.MeanLen)
	}
	// Sample std of {8,10,12}
	if math.Abs(s.StdLen-2) > 1e-9 {
		t.Errorf("StdLen = %v, want 2", s.StdLen)
	}
	if math.Abs(s.MeanSteps-20) > 1e-9 {
		t.Errorf("MeanSteps = %v, want 20", s.MeanSteps)
	}
	if math.Abs(s.MeanBacktracks-2) > 1e-9 {
		t.Errorf("MeanBacktracks = %v, want 2", s.MeanBacktracks)
	}
	// (0.2 + 0.5 + 0) / 3
	if math.Abs(s.MeanShrink-0.7/3) > 1e-9 {
		t.Errorf("MeanShrink = %v, want %v", s.MeanShrink, 0.7/3)
	}
	// (1 + 2 + 1) / 3
	if math.Abs(s.MeanDetour-4.0/3) > 1e-9 {
		t.Errorf("MeanDetour = %v, want %v", s.MeanDetour, 4.0/3)
	}
}

func TestSummarizeEdgeCases(t *testing.T) {
	tests := []struct {
		name    string
		records []RunRecord
		want    Summary
	}{
		{"empty", nil, Summary{}},
		{"all stuck", []RunRecord{{Outcome: "stuck"}, {Outcome: "stuck"}}, Summary{Runs: 2, Stuck: 2}},
		{
			"single reached",
			[]RunRecord{{Outcome: "reached", Steps: 7, RawLen: 7, SimplifiedLen: 7, OptimalLen: 7}},
			Summary{Runs: 1, Reached: 1, SuccessRate: 1, MeanLen: 7, MeanSteps: 7, MeanDetour: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.records); got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
