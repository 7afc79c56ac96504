package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/jdharms/golfrom/neighbor"
)

// runAnalyzeNeighbors implements `analyze-neighbors COURSE_DIRS...`: scans
// every course directory's terrain and writes the resulting NeighborStats
// to -o (default neighbor_stats.json).
func runAnalyzeNeighbors(args []string) error {
	fs := flag.NewFlagSet("analyze-neighbors", flag.ExitOnError)
	out := fs.StringP("output", "o", "neighbor_stats.json", "output stats path")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 1 {
		return fmt.Errorf("analyze-neighbors: usage: analyze-neighbors COURSE_DIRS...")
	}
	log := newLogger(*verbose)

	dirs := fs.Args()
	log.Debug("scanning courses", "dirs", dirs)

	stats, err := neighbor.Build(dirs)
	if err != nil {
		return fmt.Errorf("analyze-neighbors: %w", err)
	}

	if err := stats.Save(*out); err != nil {
		return fmt.Errorf("analyze-neighbors: %w", err)
	}

	log.Info("analyze-neighbors complete", "tiles", len(stats.Tiles()), "out", *out)
	return nil
}
