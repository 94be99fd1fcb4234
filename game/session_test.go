package game

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/systems"
)

func testConfig(t *testing.T, blocks, linger int) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Screen.Width = 200
	cfg.Screen.Height = 160
	cfg.Grid.BlockCount = blocks
	cfg.Session.LingerTicks = linger
	if err := cfg.Recompute(); err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}
	return cfg
}

func fixedSession(t *testing.T, cfg *config.Config, cols, rows int, blocked []components.Cell, start components.Cell, opts Options) *Session {
	t.Helper()
	g, err := systems.NewGridFromCells(cols, rows, blocked)
	if err != nil {
		t.Fatalf("NewGridFromCells() error = %v", err)
	}
	s, err := newSession(cfg, g, start, opts)
	if err != nil {
		t.Fatalf("newSession() error = %v", err)
	}
	return s
}

func TestSessionRevealsPathOnePerTick(t *testing.T) {
	cfg := testConfig(t, 0, 0)
	s := fixedSession(t, cfg, 5, 5, nil, components.Cell{Col: 0, Row: 4}, Options{Run: 1})
	nav := s.Navigator()

	for !nav.Simplified() {
		if s.RevealCount() != 0 {
			t.Fatalf("RevealCount() = %d before simplification", s.RevealCount())
		}
		s.Update()
	}
	// 8 steps plus the simplification tick
	if s.Tick() != 9 {
		t.Errorf("Tick() after simplification = %d, want 9", s.Tick())
	}

	for i := 1; i <= nav.PathLen(); i++ {
		if s.Finished() {
			t.Fatalf("finished after %d reveals, want %d", i-1, nav.PathLen())
		}
		s.Update()
		if s.RevealCount() != i {
			t.Fatalf("RevealCount() = %d, want %d", s.RevealCount(), i)
		}
	}
	if !s.Finished() || !s.Done() {
		t.Errorf("Finished() = %v, Done() = %v after full reveal", s.Finished(), s.Done())
	}
	if s.Outcome() != systems.StatusReached {
		t.Errorf("Outcome() = %s, want reached", s.Outcome())
	}
	if got := s.Board().Count(components.KindPath); got != nav.PathLen() {
		t.Errorf("path occupants = %d, want %d", got, nav.PathLen())
	}
	if s.Board().Walker() != nav.Target() {
		t.Errorf("walker at %v, want target %v", s.Board().Walker(), nav.Target())
	}
	s.EachOccupant(func(_ components.Cell, m components.Marker) {
		if m.Kind == components.KindWalker {
			t.Error("walker still drawn after reaching the target")
		}
	})

	if r := s.Record(); r.OptimalLen != 8 || r.SimplifiedLen != 8 {
		t.Errorf("Record() lengths = %d/%d, want 8/8", r.SimplifiedLen, r.OptimalLen)
	}

	// Finished sessions stop counting ticks
	s.Update()
	if s.Tick() != 17 {
		t.Errorf("Tick() = %d, want 17", s.Tick())
	}
}

func TestSessionStuckFinishesImmediately(t *testing.T) {
	cfg := testConfig(t, 0, 0)
	calls := 0
	s := fixedSession(t, cfg, 5, 5, []components.Cell{{Col: 3, Row: 0}, {Col: 4, Row: 1}}, components.Cell{Col: 0, Row: 4},
		Options{Run: 3, Seed: 99, OnFinish: func(*Session) { calls++ }})

	if err := s.RunToEnd(); err != nil {
		t.Fatalf("RunToEnd() error = %v", err)
	}
	if s.Outcome() != systems.StatusStuck {
		t.Fatalf("Outcome() = %s, want stuck", s.Outcome())
	}
	if s.RevealCount() != 0 {
		t.Errorf("RevealCount() = %d, want 0", s.RevealCount())
	}
	if calls != 1 {
		t.Errorf("OnFinish called %d times, want 1", calls)
	}

	r := s.Record()
	if r.Outcome != "stuck" || r.Run != 3 || r.Seed != 99 || r.SimplifiedLen != 0 || r.OptimalLen != -1 {
		t.Errorf("Record() = %+v", r)
	}
	if r.RunID != s.ID() || r.RunID == "" {
		t.Errorf("Record().RunID = %q, want %q", r.RunID, s.ID())
	}
	if r.Blocked != 2 || r.Rejected != s.Navigator().Backtracks() {
		t.Errorf("Record() blocked/rejected = %d/%d", r.Blocked, r.Rejected)
	}
}

func TestSessionLinger(t *testing.T) {
	cfg := testConfig(t, 0, 3)
	calls := 0
	s := fixedSession(t, cfg, 3, 3, nil, components.Cell{Col: 1, Row: 0}, Options{OnFinish: func(*Session) { calls++ }})

	for !s.Finished() {
		s.Update()
	}
	for i := 0; i < 3; i++ {
		if s.Done() {
			t.Fatalf("Done() after %d linger ticks, want 3", i)
		}
		s.Update()
	}
	if !s.Done() {
		t.Error("Done() = false after linger")
	}
	if calls != 1 {
		t.Errorf("OnFinish called %d times, want 1", calls)
	}
}

func TestSessionToggles(t *testing.T) {
	cfg := testConfig(t, 0, 0)
	blocked := []components.Cell{{Col: 1, Row: 1}, {Col: 2, Row: 3}}
	s := fixedSession(t, cfg, 5, 5, blocked, components.Cell{Col: 0, Row: 4}, Options{})

	countKind := func(k components.Kind) int {
		n := 0
		s.EachOccupant(func(_ components.Cell, m components.Marker) {
			if m.Kind == k {
				n++
			}
		})
		return n
	}

	if !s.ShowBlocked() || !s.ShowGrid() {
		t.Fatalf("initial toggles = %v/%v, want true/true", s.ShowGrid(), s.ShowBlocked())
	}
	if got := countKind(components.KindBlocked); got != 2 {
		t.Errorf("blocked occupants = %d, want 2", got)
	}

	s.ToggleBlocked()
	if got := countKind(components.KindBlocked); got != 0 {
		t.Errorf("blocked occupants with display off = %d, want 0", got)
	}
	if got := countKind(components.KindWalker) + countKind(components.KindTarget); got != 2 {
		t.Errorf("walker+target = %d, want 2", got)
	}

	s.ToggleGrid()
	if s.ShowGrid() {
		t.Error("ShowGrid() = true after toggle")
	}

	// Toggles do not touch the navigator
	if s.Navigator().Steps() != 0 || s.Tick() != 0 {
		t.Error("toggling advanced the run")
	}

	// A shared view carries over to the next session
	next := fixedSession(t, cfg, 5, 5, nil, components.Cell{Col: 0, Row: 0}, Options{View: s.View()})
	if next.ShowGrid() || next.ShowBlocked() {
		t.Errorf("next session toggles = %v/%v, want false/false", next.ShowGrid(), next.ShowBlocked())
	}
}

func TestNewSessionFromRNG(t *testing.T) {
	cfg := testConfig(t, 60, 0)

	run := func() *Session {
		s, err := NewSession(cfg, rand.New(rand.NewSource(11)), Options{Run: 1, Seed: 11})
		if err != nil {
			t.Fatalf("NewSession() error = %v", err)
		}
		if err := s.RunToEnd(); err != nil {
			t.Fatalf("RunToEnd() error = %v", err)
		}
		return s
	}

	a, b := run(), run()
	ra, rb := a.Record(), b.Record()
	ra.RunID, rb.RunID = "", ""
	if ra != rb {
		t.Errorf("records differ for identical seeds:\n%+v\n%+v", ra, rb)
	}
	if a.ID() == b.ID() {
		t.Error("run IDs should be unique")
	}
	if got := a.Board().Count(components.KindBlocked); got != 60 {
		t.Errorf("blocked occupants = %d, want 60", got)
	}
	if a.Board().Target() != a.Grid().Target() {
		t.Errorf("target drawn at %v, want %v", a.Board().Target(), a.Grid().Target())
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	cfg := testConfig(t, 0, 0)
	cfg.Grid.MaxSampleAttempts = 1
	cfg.Grid.BlockCount = 200

	_, err := NewSession(cfg, rand.New(rand.NewSource(1)), Options{})
	if !errors.Is(err, systems.ErrSamplingExhausted) {
		t.Errorf("NewSession() error = %v, want ErrSamplingExhausted", err)
	}
}
