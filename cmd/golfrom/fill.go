package main

import (
	"fmt"
	"strconv"

	flag "github.com/spf13/pflag"

	"github.com/jdharms/golfrom/forest"
	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/neighbor"
)

func forestTileAsHoleTile(tile uint8) hole.Tile {
	return hole.Byte(tile)
}

// runFill implements `fill COURSE_DIR HOLE_NUM STATS.json`: runs the WFC
// forest filler against one hole's placeholder regions in place, using
// observed tile-adjacency counts from STATS.json. Standalone from
// write/pack, for editor integration testing (SPEC_FULL.md §6.2).
func runFill(args []string) error {
	fs := flag.NewFlagSet("fill", flag.ExitOnError)
	maxBacktracks := fs.Int("max-backtracks", forest.DefaultMaxBacktracks, "backtrack budget before falling back to relaxation")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 3 {
		return fmt.Errorf("fill: usage: fill COURSE_DIR HOLE_NUM STATS.json")
	}
	log := newLogger(*verbose)

	courseDir, holeNumArg, statsPath := fs.Arg(0), fs.Arg(1), fs.Arg(2)

	holeNum, err := strconv.Atoi(holeNumArg)
	if err != nil {
		return fmt.Errorf("fill: invalid hole number %q: %w", holeNumArg, err)
	}

	d, err := loadHole(courseDir, holeNum)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	stats, err := neighbor.Load(statsPath)
	if err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	regions := forest.DetectRegions(d.Terrain)
	log.Debug("regions detected", "count", len(regions))

	opts := forest.Options{MaxBacktracks: *maxBacktracks}
	for i, region := range regions {
		result := forest.FillRegion(d.Terrain, region, stats, opts)
		log.Debug("region filled", "index", i, "cells", len(region.Cells), "backtracks", result.Backtracks, "unfilled", len(result.Unfilled))

		for cell, tile := range result.Tiles {
			d.Terrain[cell.Row][cell.Col] = forestTileAsHoleTile(tile)
		}
		for _, cell := range result.Unfilled {
			log.Debug("cell left unfilled", "row", cell.Row, "col", cell.Col)
		}
	}

	if err := saveHole(courseDir, d); err != nil {
		return fmt.Errorf("fill: %w", err)
	}

	log.Info("fill complete", "hole", holeNum, "regions", len(regions))
	return nil
}
