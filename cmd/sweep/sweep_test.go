package main

import (
	"testing"
	"time"

	"github.com/pthm-cable/pathwalker/config"
)

func TestBlockCounts(t *testing.T) {
	tests := []struct {
		name           string
		from, to, step int
		want           []int
		wantErr        bool
	}{
		{"single", 100, 100, 50, []int{100}, false},
		{"inclusive end", 0, 300, 100, []int{0, 100, 200, 300}, false},
		{"uneven end", 0, 250, 100, []int{0, 100, 200}, false},
		{"zero step", 0, 100, 0, nil, true},
		{"reversed", 200, 100, 10, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := blockCounts(tt.from, tt.to, tt.step)
			if (err != nil) != tt.wantErr {
				t.Fatalf("blockCounts() error = %v, wantErr %v", err, tt.wantErr)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("blockCounts() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("blockCounts()[%d] = %d, want %d", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	base := config.Default()
	base.Screen.Width = 200
	base.Screen.Height = 160
	base.Grid.BlockCount = 0
	if err := base.Recompute(); err != nil {
		t.Fatal(err)
	}
	baseBlocks := base.Grid.BlockCount

	row, records, err := evaluate(base, 0, evalSeeds(4))
	if err != nil {
		t.Fatalf("evaluate() error = %v", err)
	}
	if base.Grid.BlockCount != baseBlocks {
		t.Errorf("evaluate() modified base config")
	}
	if len(records) != 4 || row.Runs != 4 {
		t.Fatalf("runs = %d records, %d in row, want 4", len(records), row.Runs)
	}
	// No obstacles: every run reaches the target without backtracking
	if row.Reached != 4 || row.SuccessRate != 1 || row.MeanBacktracks != 0 || row.MeanDetour != 1 {
		t.Errorf("row = %+v, want all reached without backtracks", row)
	}
	for _, r := range records {
		if r.Steps != r.SimplifiedLen {
			t.Errorf("seed %d: steps %d != trail length %d on open grid", r.Seed, r.Steps, r.SimplifiedLen)
		}
	}
}

func TestEvaluateTooManyBlocks(t *testing.T) {
	base := config.Default()
	base.Screen.Width = 200
	base.Screen.Height = 160
	base.Grid.BlockCount = 0
	if err := base.Recompute(); err != nil {
		t.Fatal(err)
	}
	if _, _, err := evaluate(base, 10000, evalSeeds(1)); err == nil {
		t.Error("evaluate() with more blocks than cells should fail")
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0m00s"},
		{95 * time.Second, "1m35s"},
		{3*time.Hour + 2*time.Minute + 1*time.Second, "3h02m01s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
