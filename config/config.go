// Package config provides configuration loading and access for the walker.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all walker configuration parameters.
// A loaded Config is treated as read-only and passed by pointer to constructors.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Grid      GridConfig      `yaml:"grid"`
	Colors    ColorsConfig    `yaml:"colors"`
	View      ViewConfig      `yaml:"view"`
	Session   SessionConfig   `yaml:"session"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"` // Ticks per second; one navigator step per tick
	Title     string `yaml:"title"`
}

// GridConfig holds obstacle grid parameters.
type GridConfig struct {
	CellSize          int `yaml:"cell_size"`           // Pixels per cell
	Border            int `yaml:"border"`              // Cells of offset before the first drawn cell
	Margin            int `yaml:"margin"`              // Cells subtracted from the screen grid to get the interior bound
	BlockCount        int `yaml:"block_count"`         // Blocked cells sampled per run
	MaxSampleAttempts int `yaml:"max_sample_attempts"` // Upper bound on random draws during block placement
	ReservedCols      int `yaml:"reserved_cols"`       // Corner near the target kept free of blocks
	ReservedRows      int `yaml:"reserved_rows"`
}

// RGB is an opaque color.
type RGB struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// RGBA returns the color with full alpha.
func (c RGB) RGBA() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 255}
}

// ColorsConfig holds the palette.
type ColorsConfig struct {
	Background RGB `yaml:"background"`
	GridLines  RGB `yaml:"grid_lines"`
	Blocked    RGB `yaml:"blocked"`
	Walker     RGB `yaml:"walker"`
	Target     RGB `yaml:"target"`
	Path       RGB `yaml:"path"`
}

// ViewConfig holds the initial state of the presentation toggles.
type ViewConfig struct {
	ShowGrid      bool `yaml:"show_grid"`
	ShowBlocked   bool `yaml:"show_blocked"`
	GridLineWidth int  `yaml:"grid_line_width"`
}

// SessionConfig holds run lifecycle parameters.
type SessionConfig struct {
	LingerTicks int `yaml:"linger_ticks"` // Ticks a finished run stays on screen
}

// AudioConfig holds cue tone parameters.
type AudioConfig struct {
	Enabled     bool    `yaml:"enabled"`
	SampleRate  int     `yaml:"sample_rate"`
	ReachedTone float64 `yaml:"reached_tone"` // Hz
	StuckTone   float64 `yaml:"stuck_tone"`   // Hz
	DurationMs  int     `yaml:"duration_ms"`
}

// TelemetryConfig holds run export parameters.
type TelemetryConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WidthCells  int // Screen.Width / Grid.CellSize
	HeightCells int // Screen.Height / Grid.CellSize
	MaxCol      int // Largest usable column
	MaxRow      int // Largest usable row
	CellRadius  int // Grid.CellSize / 2
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults. Panics if they do not parse, which
// only happens when defaults.yaml itself is broken.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	if c.Grid.CellSize <= 0 {
		c.Derived = DerivedConfig{}
		return
	}
	c.Derived.WidthCells = c.Screen.Width / c.Grid.CellSize
	c.Derived.HeightCells = c.Screen.Height / c.Grid.CellSize
	c.Derived.MaxCol = c.Derived.WidthCells - c.Grid.Margin
	c.Derived.MaxRow = c.Derived.HeightCells - c.Grid.Margin
	c.Derived.CellRadius = c.Grid.CellSize / 2
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	c.computeDerived()
	return c.Validate()
}

// Validate checks settings without clamping. Field errors are joined; interior
// size errors are checked only once the fields are sane.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size %dx%d must be positive", c.Screen.Width, c.Screen.Height))
	}
	if c.Screen.TargetFPS <= 0 {
		errs = append(errs, fmt.Errorf("target_fps %d must be positive", c.Screen.TargetFPS))
	}
	if c.Grid.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("grid.cell_size %d must be positive", c.Grid.CellSize))
	}
	if c.Grid.Border < 0 || c.Grid.Margin < 0 {
		errs = append(errs, fmt.Errorf("grid.border %d and grid.margin %d must not be negative", c.Grid.Border, c.Grid.Margin))
	}
	if c.Grid.ReservedCols < 0 || c.Grid.ReservedRows < 0 {
		errs = append(errs, fmt.Errorf("grid.reserved_cols/rows must not be negative"))
	}
	if c.Grid.BlockCount < 0 {
		errs = append(errs, fmt.Errorf("grid.block_count %d must not be negative", c.Grid.BlockCount))
	}
	if c.Grid.MaxSampleAttempts <= 0 {
		errs = append(errs, fmt.Errorf("grid.max_sample_attempts %d must be positive", c.Grid.MaxSampleAttempts))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}

	// Walker start and blocks are both drawn from [0,MaxCol) x [0,MaxRow)
	if c.Derived.MaxCol < 1 || c.Derived.MaxRow < 1 {
		return fmt.Errorf("invalid config: interior %dx%d cells leaves no sampling region",
			c.Derived.MaxCol, c.Derived.MaxRow)
	}
	if avail := c.SampleRegionCells(); c.Grid.BlockCount > avail {
		return fmt.Errorf("invalid config: grid.block_count %d exceeds %d available cells", c.Grid.BlockCount, avail)
	}
	return nil
}

// SampleRegionCells counts the cells eligible for block placement.
func (c *Config) SampleRegionCells() int {
	n := 0
	for col := 0; col < c.Derived.MaxCol; col++ {
		for row := 0; row < c.Derived.MaxRow; row++ {
			if !c.IsReserved(col, row) {
				n++
			}
		}
	}
	return n
}

// IsReserved reports whether a cell lies in the block-free corner near the target.
func (c *Config) IsReserved(col, row int) bool {
	return col > c.Derived.MaxCol-c.Grid.ReservedCols && row < c.Grid.ReservedRows
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
