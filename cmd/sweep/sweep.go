package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/game"
	"github.com/pthm-cable/pathwalker/telemetry"
)

// SweepRow aggregates all seeds for one obstacle count.
type SweepRow struct {
	Blocks         int     `csv:"blocks"`
	Runs           int     `csv:"runs"`
	Reached        int     `csv:"reached"`
	SuccessRate    float64 `csv:"success_rate"`
	MeanLen        float64 `csv:"mean_len"`
	StdLen         float64 `csv:"std_len"`
	MeanSteps      float64 `csv:"mean_steps"`
	StdSteps       float64 `csv:"std_steps"`
	MeanBacktracks float64 `csv:"mean_backtracks"`
	MeanShrink     float64 `csv:"mean_shrink"`
	MeanDetour     float64 `csv:"mean_detour"`
	ElapsedMs      int64   `csv:"elapsed_ms"`
}

// evalSeeds derives the per-run seeds, spaced like the batch tools expect.
func evalSeeds(n int) []int64 {
	seeds := make([]int64, n)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	return seeds
}

// evaluate runs one session per seed with the given obstacle count.
// base is not modified.
func evaluate(base *config.Config, blocks int, seeds []int64) (SweepRow, []telemetry.RunRecord, error) {
	cfg := *base
	cfg.Grid.BlockCount = blocks
	cfg.Session.LingerTicks = 0
	if err := cfg.Recompute(); err != nil {
		return SweepRow{}, nil, err
	}

	start := time.Now()
	records := make([]telemetry.RunRecord, 0, len(seeds))
	for i, seed := range seeds {
		s, err := game.NewSession(&cfg, rand.New(rand.NewSource(seed)), game.Options{Run: i + 1, Seed: seed})
		if err != nil {
			return SweepRow{}, nil, fmt.Errorf("blocks %d seed %d: %w", blocks, seed, err)
		}
		if err := s.RunToEnd(); err != nil {
			return SweepRow{}, nil, fmt.Errorf("blocks %d seed %d: %w", blocks, seed, err)
		}
		records = append(records, s.Record())
	}

	sum := telemetry.Summarize(records)
	return SweepRow{
		Blocks:         blocks,
		Runs:           sum.Runs,
		Reached:        sum.Reached,
		SuccessRate:    sum.SuccessRate,
		MeanLen:        sum.MeanLen,
		StdLen:         sum.StdLen,
		MeanSteps:      sum.MeanSteps,
		StdSteps:       sum.StdSteps,
		MeanBacktracks: sum.MeanBacktracks,
		MeanShrink:     sum.MeanShrink,
		MeanDetour:     sum.MeanDetour,
		ElapsedMs:      time.Since(start).Milliseconds(),
	}, records, nil
}

// blockCounts lists from, from+step, ... up to and including to.
func blockCounts(from, to, step int) ([]int, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step %d must be positive", step)
	}
	if from < 0 || to < from {
		return nil, fmt.Errorf("range %d..%d is empty", from, to)
	}
	var counts []int
	for b := from; b <= to; b += step {
		counts = append(counts, b)
	}
	return counts, nil
}
