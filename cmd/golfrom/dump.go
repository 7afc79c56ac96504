package main

import (
	"fmt"
	"path/filepath"

	flag "github.com/spf13/pflag"

	"github.com/jdharms/golfrom/pack"
	"github.com/jdharms/golfrom/rom"
)

// runDump implements `dump ROM OUT_DIR`: extracts all 54 holes of a stock
// cartridge into OUT_DIR/{japan,us,uk}/hole_NN.json plus a course.json
// per course (spec.md §6).
func runDump(args []string) error {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("dump: usage: dump ROM OUT_DIR")
	}
	log := newLogger(*verbose)

	romPath, outDir := fs.Arg(0), fs.Arg(1)

	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	extracted, metas, err := pack.ExtractStockCourses(img)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}

	for i, course := range extracted {
		name := pack.CourseNames[i]
		dir := filepath.Join(outDir, name)
		log.Debug("writing course", "name", name, "dir", dir)
		meta := courseJSON{
			Name:        pack.CourseDisplayNames[i],
			HoleOffset:  metas[i].HoleOffset,
			TerrainBank: metas[i].TerrainBank,
			GreensBank:  metas[i].GreensBank,
		}
		if err := saveCourse(dir, course, meta); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
	}

	log.Info("dump complete", "rom", romPath, "courses", len(extracted), "out_dir", outDir)
	return nil
}
