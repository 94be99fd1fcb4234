// Package main sweeps obstacle counts across seeds and reports how often the
// walker reaches its target and how long its simplified trails are.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/pathwalker/config"
	"github.com/pthm-cable/pathwalker/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Base config YAML file (empty = use defaults)")
	from := flag.Int("from", 0, "First block count")
	to := flag.Int("to", 1500, "Last block count (inclusive)")
	step := flag.Int("step", 100, "Block count increment")
	seeds := flag.Int("seeds", 20, "Number of seeds per block count")
	outputDir := flag.String("output", "", "Output directory for results")
	flag.Parse()

	if *outputDir == "" {
		log.Fatal("--output is required")
	}
	if *seeds <= 0 {
		log.Fatal("--seeds must be positive")
	}

	// Create output directory
	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}

	// Load base config
	baseCfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	counts, err := blockCounts(*from, *to, *step)
	if err != nil {
		log.Fatalf("invalid sweep range: %v", err)
	}

	out, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		log.Fatalf("failed to create output manager: %v", err)
	}
	defer out.Close()
	if err := out.WriteConfig(baseCfg); err != nil {
		log.Printf("failed to write config snapshot: %v", err)
	}

	fmt.Printf("Sweeping %d block counts (%d..%d step %d), %d seeds each\n",
		len(counts), *from, *to, *step, *seeds)

	runSeeds := evalSeeds(*seeds)
	rows := make([]SweepRow, 0, len(counts))
	startTime := time.Now()

	for i, blocks := range counts {
		row, records, err := evaluate(baseCfg, blocks, runSeeds)
		if err != nil {
			// Larger counts only fail the same way
			log.Printf("stopping sweep: %v", err)
			break
		}
		rows = append(rows, row)

		for _, r := range records {
			if err := out.WriteRun(r); err != nil {
				log.Printf("failed to write run: %v", err)
			}
		}

		elapsed := time.Since(startTime)
		remaining := time.Duration(len(counts)-i-1) * (elapsed / time.Duration(i+1))
		fmt.Printf("blocks=%d reached=%d/%d mean_len=%.1f mean_steps=%.1f | elapsed: %s, ETA: %s\n",
			blocks, row.Reached, row.Runs, row.MeanLen, row.MeanSteps,
			formatDuration(elapsed), formatDuration(remaining))
	}

	sweepPath := filepath.Join(*outputDir, "sweep.csv")
	f, err := os.Create(sweepPath)
	if err != nil {
		log.Fatalf("failed to create sweep file: %v", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		log.Fatalf("failed to write sweep results: %v", err)
	}

	fmt.Printf("\nSweep complete in %s, results saved to: %s\n", formatDuration(time.Since(startTime)), sweepPath)
}
