package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/pack"
	"github.com/jdharms/golfrom/rom"
)

// runPack implements `pack ROM COURSE_DIR... [-o OUT.nes]
// [--validate-only]`: writes 1 or 2 whole courses at once, starting from
// slot 0.
func runPack(args []string) error {
	fs := flag.NewFlagSet("pack", flag.ExitOnError)
	out := fs.StringP("output", "o", "", "output ROM path (default: overwrite input)")
	validateOnly := fs.Bool("validate-only", false, "validate without writing")
	verbose := fs.BoolP("verbose", "v", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() < 2 {
		return fmt.Errorf("pack: usage: pack ROM COURSE_DIR...")
	}
	log := newLogger(*verbose)

	romPath := fs.Arg(0)
	dirs := fs.Args()[1:]

	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	courses := make([][]*hole.Data, len(dirs))
	for i, dir := range dirs {
		c, err := loadCourse(dir)
		if err != nil {
			return fmt.Errorf("pack: %w", err)
		}
		courses[i] = c
	}

	if *validateOnly {
		stats, err := pack.Validate(img, courses)
		if err != nil {
			return fmt.Errorf("pack: %w", err)
		}
		log.Info("validation passed", "terrain_bytes", stats.TotalTerrainBytes, "greens_bytes", stats.TotalGreensBytes)
		return nil
	}

	stats, err := pack.WriteCourses(img, courses, pack.Options{Verbose: *verbose})
	if err != nil {
		return fmt.Errorf("pack: %w", err)
	}
	log.Debug("pack stats", "stats", stats.Dump())

	dest := romPath
	if *out != "" {
		dest = *out
	}
	if err := img.Save(dest); err != nil {
		return fmt.Errorf("pack: %w", err)
	}

	log.Info("pack complete", "rom", dest, "courses", len(courses))
	return nil
}
