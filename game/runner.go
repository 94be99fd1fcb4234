package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/pathwalker/config"
)

// Command is a front-end request, independent of the input device.
type Command uint8

const (
	CommandNone          Command = iota // No request
	CommandQuit                         // Leave the program
	CommandRestart                      // Abandon the run and start a new one
	CommandToggleGrid                   // Flip grid line display
	CommandToggleBlocked                // Flip blocked cell display
)

// Runner plays sessions back to back from one rng. Front ends own a Runner
// and feed it ticks and commands.
type Runner struct {
	cfg      *config.Config
	rng      *rand.Rand
	seed     int64
	view     *View
	onFinish func(*Session)

	runs    int
	session *Session
}

// NewRunner seeds an rng and starts the first session.
func NewRunner(cfg *config.Config, seed int64, onFinish func(*Session)) (*Runner, error) {
	r := &Runner{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(seed)),
		seed:     seed,
		view:     NewView(cfg),
		onFinish: onFinish,
	}
	if err := r.Restart(); err != nil {
		return nil, err
	}
	return r, nil
}

// Restart discards the current session and builds the next one. The rng
// carries on, so each run samples a fresh grid.
func (r *Runner) Restart() error {
	s, err := NewSession(r.cfg, r.rng, Options{
		Run:      r.runs + 1,
		Seed:     r.seed,
		View:     r.view,
		OnFinish: r.onFinish,
	})
	if err != nil {
		return fmt.Errorf("starting run %d: %w", r.runs+1, err)
	}
	r.runs++
	r.session = s
	return nil
}

// Update advances the current session one tick and restarts once it is done.
func (r *Runner) Update() error {
	r.session.Update()
	if r.session.Done() {
		return r.Restart()
	}
	return nil
}

// Handle applies a command. It reports whether the front end should quit.
func (r *Runner) Handle(cmd Command) (quit bool, err error) {
	switch cmd {
	case CommandQuit:
		return true, nil
	case CommandRestart:
		slog.Info("run restarted", "run", r.session.Run(), "tick", r.session.Tick())
		return false, r.Restart()
	case CommandToggleGrid:
		r.session.ToggleGrid()
	case CommandToggleBlocked:
		r.session.ToggleBlocked()
	}
	return false, nil
}

// Session returns the run in progress.
func (r *Runner) Session() *Session { return r.session }

// Runs returns how many sessions have been started.
func (r *Runner) Runs() int { return r.runs }

// Seed returns the seed the rng was created with.
func (r *Runner) Seed() int64 { return r.seed }
