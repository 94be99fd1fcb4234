package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pathwalker/components"
	"github.com/pthm-cable/pathwalker/config"
)

// OutputManager handles run output with CSV logging.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir       string
	runsFile  *os.File
	trailFile *os.File

	// Track if headers have been written
	runsHeaderWritten  bool
	trailHeaderWritten bool
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, "runs.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating runs.csv: %w", err)
	}
	om.runsFile = f

	f, err = os.Create(filepath.Join(dir, "trail.csv"))
	if err != nil {
		om.runsFile.Close()
		return nil, fmt.Errorf("creating trail.csv: %w", err)
	}
	om.trailFile = f

	return om, nil
}

// WriteConfig saves the effective configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteRun appends a run record to runs.csv.
func (om *OutputManager) WriteRun(r RunRecord) error {
	if om == nil {
		return nil
	}

	records := []RunRecord{r}

	if !om.runsHeaderWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, om.runsFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
		om.runsHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(records, om.runsFile); err != nil {
			return fmt.Errorf("writing run: %w", err)
		}
	}

	return nil
}

// WriteTrail appends a run's final trail to trail.csv.
func (om *OutputManager) WriteTrail(runID string, path []components.Cell) error {
	if om == nil || len(path) == 0 {
		return nil
	}

	rows := TrailRows(runID, path)

	if !om.trailHeaderWritten {
		if err := gocsv.Marshal(rows, om.trailFile); err != nil {
			return fmt.Errorf("writing trail: %w", err)
		}
		om.trailHeaderWritten = true
	} else {
		if err := gocsv.MarshalWithoutHeaders(rows, om.trailFile); err != nil {
			return fmt.Errorf("writing trail: %w", err)
		}
	}

	return nil
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error

	if om.runsFile != nil {
		if err := om.runsFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if om.trailFile != nil {
		if err := om.trailFile.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
