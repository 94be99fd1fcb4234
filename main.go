package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/pathwalker/audio"
	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/game"
	"github.com/pthm-cable/pathwalker/renderer"
	"github.com/pthm-cable/pathwalker/systems"
	"github.com/pthm-cable/pathwalker/telemetry"
	"github.com/pthm-cable/pathwalker/terminal"
	"github.com/pthm-cable/pathwalker/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	tui := flag.Bool("tui", false, "Run in the terminal instead of a window")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot (overrides config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxRuns := flag.Int("max-runs", 0, "Stop after N finished runs (0 = unlimited)")

	flag.Parse()

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// The terminal front end owns stdout, so its logs go to a file or nowhere
	logOut := io.Writer(os.Stdout)
	if *tui {
		logOut = io.Discard
	}

	// Set up slog (JSON for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *outputDir != "" {
		cfg.Telemetry.OutputDir = *outputDir
	}

	output, err := telemetry.NewOutputManager(cfg.Telemetry.OutputDir)
	if err != nil {
		slog.Error("failed to create output manager", "error", err)
		os.Exit(1)
	}
	defer output.Close()

	if *tui && output != nil {
		f, err := os.Create(filepath.Join(output.Dir(), "run.log"))
		if err == nil {
			defer f.Close()
			slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
		}
	}

	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	player := audio.NewPlayer(cfg.Audio)
	defer player.Close()

	rec := &recorder{output: output, player: player, maxRuns: *maxRuns}
	runner, err := game.NewRunner(cfg, rngSeed, rec.onFinish)
	if err != nil {
		slog.Error("failed to start run", "error", err)
		os.Exit(1)
	}

	slog.Info("starting",
		"seed", rngSeed,
		"headless", *headless,
		"tui", *tui,
		"max_runs", *maxRuns,
		"blocks", cfg.Grid.BlockCount,
		"interior", [2]int{cfg.Derived.MaxCol + 1, cfg.Derived.MaxRow + 1},
	)

	switch {
	case *headless:
		err = runHeadless(runner, rec)
	case *tui:
		err = runTerminal(runner, rec, cfg.Screen.TargetFPS)
	default:
		err = runWindow(runner, rec, cfg)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		// The terminal is restored by now; its logs may have gone nowhere
		if *tui {
			reportError(os.Stderr, err)
		}
	}

	telemetry.Summarize(rec.records).LogSummary()
	if err != nil {
		os.Exit(1)
	}
}

// reportError prints a fatal error for the user.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "pathwalker: %v\n", err)
}

// recorder collects finished runs and fans them out to telemetry and audio.
type recorder struct {
	output  *telemetry.OutputManager
	player  *audio.Player
	maxRuns int
	records []telemetry.RunRecord
}

func (r *recorder) onFinish(s *game.Session) {
	record := s.Record()
	record.LogRun()
	r.records = append(r.records, record)

	if err := r.output.WriteRun(record); err != nil {
		slog.Error("failed to write run", "error", err)
	}
	if err := r.output.WriteTrail(record.RunID, s.Navigator().Path()); err != nil {
		slog.Error("failed to write trail", "error", err)
	}

	if s.Outcome() == systems.StatusStuck {
		r.player.Stuck()
	} else {
		r.player.Reached()
	}
}

// done reports whether the requested number of runs has finished.
func (r *recorder) done() bool {
	return r.maxRuns > 0 && len(r.records) >= r.maxRuns
}

// runHeadless plays sessions back to back without drawing.
func runHeadless(runner *game.Runner, rec *recorder) error {
	for {
		if err := runner.Session().RunToEnd(); err != nil {
			return err
		}
		if rec.done() {
			return nil
		}
		if err := runner.Restart(); err != nil {
			return err
		}
	}
}

// runTerminal plays in the terminal until quit, interrupt, or max runs.
func runTerminal(runner *game.Runner, rec *recorder, fps int) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return terminal.New(screen, runner).Run(ctx, fps, rec.done)
}

// runWindow plays in a raylib window.
func runWindow(runner *game.Runner, rec *recorder, cfg *config.Config) error {
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Esc is handled as a command like Q
	rl.SetExitKey(0)

	board := renderer.NewBoardRenderer(cfg)
	theme := ui.DefaultTheme()
	hud := ui.NewHUD(theme)
	panel := ui.NewControlsPanel(theme, int32(cfg.Screen.Width))

	pending := game.CommandNone
	for !rl.WindowShouldClose() && !rec.done() {
		cmd := ui.ReadCommand(panel)
		if cmd == game.CommandNone {
			cmd = pending
		}
		pending = game.CommandNone

		quit, err := runner.Handle(cmd)
		if err != nil {
			return err
		}
		if quit {
			return nil
		}

		if err := runner.Update(); err != nil {
			return err
		}

		s := runner.Session()
		rl.BeginDrawing()
		board.Draw(s)
		hud.Draw(ui.HUDDataFrom(cfg.Screen.Title, s))
		hud.DrawControls(int32(cfg.Screen.Height))
		// Panel clicks apply on the next frame, before its tick
		pending = panel.Draw(s)
		rl.EndDrawing()
	}
	return nil
}
