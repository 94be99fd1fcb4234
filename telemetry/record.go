// Package telemetry records finished runs and exports them as CSV.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/pathwalker/components"
)

// RunRecord summarizes one finished run.
type RunRecord struct {
	RunID     string `csv:"run_id"`
	Run       int    `csv:"run"`
	Seed      int64  `csv:"seed"`
	StartCol  int    `csv:"start_col"`
	StartRow  int    `csv:"start_row"`
	TargetCol int    `csv:"target_col"`
	TargetRow int    `csv:"target_row"`
	Outcome   string `csv:"outcome"`
	Ticks     int    `csv:"ticks"`

	// Search effort
	Steps      int `csv:"steps"`
	Backtracks int `csv:"backtracks"`
	Rejected   int `csv:"rejected"`

	// Trail length before and after loop removal, and the shortest
	// possible route (-1 if unreachable)
	RawLen        int `csv:"raw_len"`
	SimplifiedLen int `csv:"simplified_len"`
	OptimalLen    int `csv:"optimal_len"`

	Blocked int `csv:"blocked"`
}

// Reached reports whether the run found the target.
func (r RunRecord) Reached() bool {
	return r.Outcome == "reached"
}

// LogRun logs the record using slog.
func (r RunRecord) LogRun() {
	slog.Info("run finished",
		"run_id", r.RunID,
		"run", r.Run,
		"seed", r.Seed,
		"outcome", r.Outcome,
		"ticks", r.Ticks,
		"steps", r.Steps,
		"backtracks", r.Backtracks,
		"raw_len", r.RawLen,
		"simplified_len", r.SimplifiedLen,
		"optimal_len", r.OptimalLen,
	)
}

// TrailRow is one cell of a run's final trail.
type TrailRow struct {
	RunID string `csv:"run_id"`
	Index int    `csv:"index"`
	Col   int    `csv:"col"`
	Row   int    `csv:"row"`
}

// TrailRows flattens a trail for export.
func TrailRows(runID string, path []components.Cell) []TrailRow {
	rows := make([]TrailRow, len(path))
	for i, c := range path {
		rows[i] = TrailRow{RunID: runID, Index: i, Col: c.Col, Row: c.Row}
	}
	return rows
}
