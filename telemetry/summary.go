package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates a batch of runs.
type Summary struct {
	Runs    int
	Reached int
	Stuck   int

	SuccessRate float64

	// Over reached runs only
	MeanLen        float64
	StdLen         float64
	MeanSteps      float64
	StdSteps       float64
	MeanBacktracks float64
	MeanShrink     float64 // Mean fraction of the raw trail removed by simplification
	MeanDetour     float64 // Mean simplified length over optimal length
}

// Summarize computes batch statistics.
func Summarize(records []RunRecord) Summary {
	s := Summary{Runs: len(records)}
	if len(records) == 0 {
		return s
	}

	var lens, steps, backs, shrink, detour []float64
	for _, r := range records {
		if !r.Reached() {
			s.Stuck++
			continue
		}
		s.Reached++
		lens = append(lens, float64(r.SimplifiedLen))
		steps = append(steps, float64(r.Steps))
		backs = append(backs, float64(r.Backtracks))
		if r.RawLen > 0 {
			shrink = append(shrink, 1-float64(r.SimplifiedLen)/float64(r.RawLen))
		}
		if r.OptimalLen > 0 {
			detour = append(detour, float64(r.SimplifiedLen)/float64(r.OptimalLen))
		}
	}
	s.SuccessRate = float64(s.Reached) / float64(s.Runs)

	if len(lens) > 0 {
		s.MeanLen, s.StdLen = meanStd(lens)
		s.MeanSteps, s.StdSteps = meanStd(steps)
		s.MeanBacktracks = stat.Mean(backs, nil)
	}
	if len(shrink) > 0 {
		s.MeanShrink = stat.Mean(shrink, nil)
	}
	if len(detour) > 0 {
		s.MeanDetour = stat.Mean(detour, nil)
	}
	return s
}

// meanStd returns the mean and sample standard deviation; the deviation of a
// single value is zero rather than NaN.
func meanStd(x []float64) (mean, std float64) {
	if len(x) == 1 {
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

// LogSummary logs the summary using slog.
func (s Summary) LogSummary() {
	slog.Info("batch summary",
		"runs", s.Runs,
		"reached", s.Reached,
		"stuck", s.Stuck,
		"success_rate", s.SuccessRate,
		"mean_len", s.MeanLen,
		"std_len", s.StdLen,
		"mean_steps", s.MeanSteps,
		"mean_backtracks", s.MeanBacktracks,
		"mean_shrink", s.MeanShrink,
		"mean_detour", s.MeanDetour,
	)
}
