package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/pack"
)

// holeFileName matches the on-disk convention package neighbor's corpus
// scanner expects: hole_NN.json, 1-indexed, zero-padded to two digits.
func holeFileName(holeNum int) string {
	return fmt.Sprintf("hole_%02d.json", holeNum)
}

// loadCourse reads a full 18-hole course directory.
func loadCourse(dir string) ([]*hole.Data, error) {
	holes := make([]*hole.Data, pack.HolesPerCourse)
	for i := 0; i < pack.HolesPerCourse; i++ {
		d, err := loadHole(dir, i+1)
		if err != nil {
			return nil, err
		}
		holes[i] = d
	}
	return holes, nil
}

// courseJSON is the per-course metadata file (spec.md §6 "Course
// directory layout"), grounded on original_source/tools/dump.py's
// course_meta dict.
type courseJSON struct {
	Name        string `json:"name"`
	HoleOffset  int    `json:"hole_offset"`
	TerrainBank int    `json:"terrain_bank"`
	GreensBank  int    `json:"greens_bank"`
}

// saveCourse writes a full 18-hole course directory plus its course.json,
// creating dir if necessary.
func saveCourse(dir string, holes []*hole.Data, meta courseJSON) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %q: %w", dir, err)
	}

	b, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding course metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "course.json"), b, 0o644); err != nil {
		return fmt.Errorf("writing course.json: %w", err)
	}

	for _, d := range holes {
		if err := saveHole(dir, d); err != nil {
			return err
		}
	}
	return nil
}

func loadHole(dir string, holeNum int) (*hole.Data, error) {
	path := filepath.Join(dir, holeFileName(holeNum))
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	d := &hole.Data{}
	if err := d.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("parsing %q: %w", path, err)
	}
	return d, nil
}

func saveHole(dir string, d *hole.Data) error {
	path := filepath.Join(dir, holeFileName(d.HoleNum))
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding hole %d: %w", d.HoleNum, err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
