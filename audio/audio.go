// Package audio plays short cue tones when a run ends.
package audio

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/pthm-cable/pathwalker/config"
)

// Player plays the outcome tones. A nil *Player is valid and silent.
type Player struct {
	rate     beep.SampleRate
	duration time.Duration
	reached  float64
	stuck    float64
}

// NewPlayer initializes the speaker. Returns nil when audio is disabled or
// the device cannot be opened; the failure is logged, never fatal.
func NewPlayer(cfg config.AudioConfig) *Player {
	if !cfg.Enabled {
		return nil
	}
	p, err := newPlayer(cfg)
	if err != nil {
		slog.Warn("audio disabled", "error", err)
		return nil
	}
	return p
}

func newPlayer(cfg config.AudioConfig) (*Player, error) {
	p := &Player{
		rate:     beep.SampleRate(cfg.SampleRate),
		duration: time.Duration(cfg.DurationMs) * time.Millisecond,
		reached:  cfg.ReachedTone,
		stuck:    cfg.StuckTone,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	if err := speaker.Init(p.rate, p.rate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("initializing speaker: %w", err)
	}
	return p, nil
}

// validate checks the tone parameters before touching the device.
func (p *Player) validate() error {
	if p.rate <= 0 {
		return fmt.Errorf("sample rate %d must be positive", p.rate)
	}
	if p.duration <= 0 {
		return fmt.Errorf("tone duration %s must be positive", p.duration)
	}
	for _, freq := range []float64{p.reached, p.stuck} {
		if freq <= 0 {
			return fmt.Errorf("tone %.0f Hz must be positive", freq)
		}
		if _, err := generators.SineTone(p.rate, freq); err != nil {
			return fmt.Errorf("tone %.0f Hz: %w", freq, err)
		}
	}
	return nil
}

// Reached plays the high tone.
func (p *Player) Reached() {
	if p == nil {
		return
	}
	p.play(p.reached)
}

// Stuck plays the low tone.
func (p *Player) Stuck() {
	if p == nil {
		return
	}
	p.play(p.stuck)
}

func (p *Player) play(freq float64) {
	sine, err := generators.SineTone(p.rate, freq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(p.rate.N(p.duration), sine))
}

// Close releases the speaker.
func (p *Player) Close() {
	if p == nil {
		return
	}
	speaker.Close()
}
