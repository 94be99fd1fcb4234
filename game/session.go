// Package game drives one walker run and holds its drawable occupants.
package game

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/systems"
	"github.com/pthm-cable/pathwalker/telemetry"
)

// ErrTickLimit is returned by RunToEnd when a session fails to finish.
var ErrTickLimit = errors.New("session exceeded its tick limit")

// View holds the presentation toggles. It is shared across restarts so a
// toggle survives the next run.
type View struct {
	ShowGrid    bool
	ShowBlocked bool
}

// NewView returns the initial toggles from config.
func NewView(cfg *config.Config) *View {
	return &View{ShowGrid: cfg.View.ShowGrid, ShowBlocked: cfg.View.ShowBlocked}
}

// Options configures a session.
type Options struct {
	Run      int            // 1-based run number
	Seed     int64          // Seed the rng was created with, for records
	View     *View          // Nil creates a fresh view from config
	OnFinish func(*Session) // Called once when the run finishes
}

// Session is one run: grid, navigator, and the board the front ends draw.
type Session struct {
	cfg   *config.Config
	grid  *systems.Grid
	nav   *systems.Navigator
	board *Board
	view  *View

	id   string
	run  int
	seed int64

	tick     int
	revealed int
	finished bool
	linger   int
	optimal  int // shortest route length, set on finish

	onFinish func(*Session)
}

// NewSession samples a grid and a start cell from rng and sets up the board.
func NewSession(cfg *config.Config, rng *rand.Rand, opts Options) (*Session, error) {
	grid, err := systems.NewGrid(cfg, rng)
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}
	start, err := grid.RandomOpenCell(rng, cfg.Grid.MaxSampleAttempts)
	if err != nil {
		return nil, fmt.Errorf("placing walker: %w", err)
	}
	return newSession(cfg, grid, start, opts)
}

func newSession(cfg *config.Config, grid *systems.Grid, start components.Cell, opts Options) (*Session, error) {
	nav, err := systems.NewNavigator(grid, start)
	if err != nil {
		return nil, fmt.Errorf("creating navigator: %w", err)
	}

	view := opts.View
	if view == nil {
		view = NewView(cfg)
	}

	s := &Session{
		cfg:      cfg,
		grid:     grid,
		nav:      nav,
		board:    NewBoard(grid, cfg.Colors, start),
		view:     view,
		id:       uuid.NewString(),
		run:      opts.Run,
		seed:     opts.Seed,
		onFinish: opts.OnFinish,
	}

	slog.Debug("run started",
		"run_id", s.id,
		"run", s.run,
		"start", start,
		"target", nav.Target(),
		"blocked", grid.BlockedCount(),
	)
	return s, nil
}

// Update advances one tick. Until the trail is simplified the navigator
// steps; afterwards one path cell is revealed per tick. A finished session
// only counts down its linger.
func (s *Session) Update() {
	if s.finished {
		if s.linger > 0 {
			s.linger--
		}
		return
	}
	s.tick++

	if !s.nav.Simplified() {
		s.nav.Update()
		s.board.MoveWalker(s.nav.Current())
		if s.nav.ReachedTarget() {
			// Only the target and the revealed trail stay on screen
			s.board.SetWalkerHidden(true)
		}
		if s.nav.Stuck() {
			s.finish()
		}
		return
	}

	if s.revealed < s.nav.PathLen() {
		s.board.AddPath(s.nav.PathAt(s.revealed))
		s.revealed++
	}
	if s.revealed >= s.nav.PathLen() {
		s.finish()
	}
}

func (s *Session) finish() {
	s.finished = true
	s.linger = s.cfg.Session.LingerTicks
	s.optimal = systems.NewAStarPlanner(s.grid).ShortestPathLen(s.nav.Start(), s.nav.Target())
	if s.nav.Stuck() {
		slog.Warn("walker stuck", "run_id", s.id, "run", s.run, "at", s.nav.Current(), "rejected", len(s.nav.Rejected()))
	}
	if s.onFinish != nil {
		s.onFinish(s)
	}
}

// MaxTicks bounds the ticks any session on this grid needs to finish,
// linger included.
func (s *Session) MaxTicks() int {
	return systems.MaxUpdates(s.grid) + s.grid.CellCount() + s.cfg.Session.LingerTicks + 1
}

// RunToEnd updates until Done, failing with ErrTickLimit past MaxTicks.
func (s *Session) RunToEnd() error {
	limit := s.MaxTicks()
	for i := 0; !s.Done(); i++ {
		if i >= limit {
			return fmt.Errorf("%w: %d ticks, status %s", ErrTickLimit, limit, s.nav.Status())
		}
		s.Update()
	}
	return nil
}

// Finished reports whether the run has ended (reveal complete or stuck).
func (s *Session) Finished() bool { return s.finished }

// Done reports whether the run has finished and lingered long enough to restart.
func (s *Session) Done() bool { return s.finished && s.linger == 0 }

// Outcome returns the navigator status.
func (s *Session) Outcome() systems.Status { return s.nav.Status() }

// RevealCount returns how many path cells have been revealed.
func (s *Session) RevealCount() int { return s.revealed }

// ToggleGrid flips grid line display.
func (s *Session) ToggleGrid() { s.view.ShowGrid = !s.view.ShowGrid }

// ToggleBlocked flips blocked cell display.
func (s *Session) ToggleBlocked() { s.view.ShowBlocked = !s.view.ShowBlocked }

// ShowGrid reports whether grid lines are drawn.
func (s *Session) ShowGrid() bool { return s.view.ShowGrid }

// ShowBlocked reports whether blocked cells are drawn.
func (s *Session) ShowBlocked() bool { return s.view.ShowBlocked }

// View returns the shared presentation toggles.
func (s *Session) View() *View { return s.view }

// EachOccupant calls fn for every occupant the current view shows.
func (s *Session) EachOccupant(fn func(components.Cell, components.Marker)) {
	showBlocked := s.view.ShowBlocked
	s.board.Each(func(c components.Cell, m components.Marker) {
		if m.Kind == components.KindBlocked && !showBlocked {
			return
		}
		fn(c, m)
	})
}

// Board returns the occupant world.
func (s *Session) Board() *Board { return s.board }

// Grid returns the obstacle grid.
func (s *Session) Grid() *systems.Grid { return s.grid }

// Navigator returns the walker.
func (s *Session) Navigator() *systems.Navigator { return s.nav }

// Config returns the session's configuration.
func (s *Session) Config() *config.Config { return s.cfg }

// ID returns the run identifier used in telemetry.
func (s *Session) ID() string { return s.id }

// Run returns the 1-based run number.
func (s *Session) Run() int { return s.run }

// Seed returns the seed recorded for this run.
func (s *Session) Seed() int64 { return s.seed }

// Tick returns the number of ticks spent before finishing.
func (s *Session) Tick() int { return s.tick }

// Record summarizes the run for telemetry. OptimalLen is only known once
// the run has finished.
func (s *Session) Record() telemetry.RunRecord {
	start, target := s.nav.Start(), s.nav.Target()
	return telemetry.RunRecord{
		RunID:         s.id,
		Run:           s.run,
		Seed:          s.seed,
		StartCol:      start.Col,
		StartRow:      start.Row,
		TargetCol:     target.Col,
		TargetRow:     target.Row,
		Outcome:       s.nav.Status().String(),
		Ticks:         s.tick,
		Steps:         s.nav.Steps(),
		Backtracks:    s.nav.Backtracks(),
		Rejected:      len(s.nav.Rejected()),
		RawLen:        s.nav.RawPathLen(),
		SimplifiedLen: s.nav.PathLen(),
		OptimalLen:    s.optimal,
		Blocked:       s.grid.BlockedCount(),
	}
}
