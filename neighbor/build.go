package neighbor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/jdharms/golfrom/hole"
)

// holesPerCourse mirrors pack.HolesPerCourse; duplicated rather than
// imported to keep neighbor free of a dependency on the packer.
const holesPerCourse = 18

// holeFileName is the course-directory naming convention this corpus uses,
// recovered from the original analyze_neighbors tool.
func holeFileName(holeNum int) string {
	return fmt.Sprintf("hole_%02d.json", holeNum)
}

// Build scans each course directory for hole_01.json..hole_18.json and
// records, for every terrain cell, which tile was observed in each
// cardinal direction from it. Course directories are scanned concurrently;
// a malformed or missing hole file fails the whole build, since a partial
// corpus would silently bias the resulting statistics.
func Build(courseDirs []string) (*Stats, error) {
	partials := make([]*Stats, len(courseDirs))

	g, _ := errgroup.WithContext(context.Background())
	for i, dir := range courseDirs {
		i, dir := i, dir
		g.Go(func() error {
			st, err := buildFromCourse(dir)
			if err != nil {
				return fmt.Errorf("course %s: %w", dir, err)
			}
			partials[i] = st
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := New()
	for _, st := range partials {
		merged.merge(st)
	}
	return merged, nil
}

func buildFromCourse(dir string) (*Stats, error) {
	st := New()

	for holeNum := 1; holeNum <= holesPerCourse; holeNum++ {
		path := filepath.Join(dir, holeFileName(holeNum))

		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		var d hole.Data
		if err := d.UnmarshalJSON(b); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		recordTerrain(st, &d)
	}

	return st, nil
}

// recordTerrain walks d's resolved terrain grid, recording each cell's
// cardinal neighbors. Placeholder cells (unresolved forest regions in a
// course still being edited) contribute no observations, since they are
// not real tile values.
func recordTerrain(st *Stats, d *hole.Data) {
	height := d.TerrainHeight
	if height > len(d.Terrain) {
		height = len(d.Terrain)
	}

	at := func(r, c int) (uint8, bool) {
		if r < 0 || r >= height || c < 0 || c >= len(d.Terrain[r]) {
			return 0, false
		}
		t := d.Terrain[r][c]
		if t.IsPlaceholder() {
			return 0, false
		}
		b, _ := t.Byte()
		return b, true
	}

	for r := 0; r < height; r++ {
		row := d.Terrain[r]
		for c := range row {
			tile, ok := at(r, c)
			if !ok {
				continue
			}

			if n, ok := at(r-1, c); ok {
				st.record(tile, Up, n)
			}
			if n, ok := at(r+1, c); ok {
				st.record(tile, Down, n)
			}
			if n, ok := at(r, c-1); ok {
				st.record(tile, Left, n)
			}
			if n, ok := at(r, c+1); ok {
				st.record(tile, Right, n)
			}
		}
	}
}
