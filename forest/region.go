package forest

import (
	"github.com/jdharms/golfrom/hole"
)

// Region is one contiguous (4-connected) group of placeholder terrain
// cells to be filled, together with each cell's Manhattan distance to the
// nearest out-of-bounds border tile (§4.5.2).
type Region struct {
	Cells         map[Cell]bool
	DistanceField map[Cell]int
}

// distance returns region's recorded distance for cell, or a large
// fallback if the field has no entry (mirrors the original's dict.get
// default of 999, used only defensively — DetectRegions always populates
// every region cell).
func (r *Region) distance(c Cell) int {
	if d, ok := r.DistanceField[c]; ok {
		return d
	}
	return 999
}

// DetectRegions finds every contiguous placeholder region in terrain and
// computes its distance field.
func DetectRegions(terrain [][]hole.Tile) []*Region {
	height := len(terrain)
	if height == 0 {
		return nil
	}

	visited := make(map[Cell]bool)
	var regions []*Region

	for r := 0; r < height; r++ {
		for c := 0; c < len(terrain[r]); c++ {
			cell := Cell{r, c}
			if visited[cell] {
				continue
			}
			if !terrain[r][c].IsPlaceholder() {
				continue
			}

			cells := floodFillPlaceholder(terrain, cell, visited)
			if len(cells) == 0 {
				continue
			}

			region := &Region{Cells: cells, DistanceField: make(map[Cell]int)}
			region.calculateDistanceField(terrain)
			regions = append(regions, region)
		}
	}

	return regions
}

func floodFillPlaceholder(terrain [][]hole.Tile, start Cell, visited map[Cell]bool) map[Cell]bool {
	height := len(terrain)
	cells := make(map[Cell]bool)

	queue := []Cell{start}
	visited[start] = true

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		cells[cur] = true

		for _, d := range cardinalDirs {
			n := Cell{cur.Row + d.dr, cur.Col + d.dc}
			if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
				continue
			}
			if visited[n] {
				continue
			}
			if !terrain[n.Row][n.Col].IsPlaceholder() {
				continue
			}
			visited[n] = true
			queue = append(queue, n)
		}
	}

	return cells
}

// calculateDistanceField computes, for every cell in r, its Manhattan
// distance to the nearest out-of-bounds border tile via multi-source BFS
// seeded from OOB tiles found in the region's 8-neighborhood, falling
// back to distance-to-terrain-edge when no OOB tile is nearby.
func (r *Region) calculateDistanceField(terrain [][]hole.Tile) {
	oobCells := findNearbyOOBTiles(terrain, r.Cells)

	if len(oobCells) == 0 {
		r.calculateDistanceToEdge(terrain)
		return
	}

	height := len(terrain)

	type queued struct {
		cell Cell
		dist int
	}

	visited := make(map[Cell]bool, len(oobCells))
	queue := make([]queued, 0, len(oobCells))
	for c := range oobCells {
		visited[c] = true
		queue = append(queue, queued{c, 0})
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if r.Cells[cur.cell] {
			r.DistanceField[cur.cell] = cur.dist
		}

		for _, d := range cardinalDirs {
			n := Cell{cur.cell.Row + d.dr, cur.cell.Col + d.dc}
			if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
				continue
			}
			if visited[n] {
				continue
			}
			visited[n] = true
			queue = append(queue, queued{n, cur.dist + 1})
		}
	}
}

func findNearbyOOBTiles(terrain [][]hole.Tile, cells map[Cell]bool) map[Cell]bool {
	height := len(terrain)
	oob := make(map[Cell]bool)

	offsets := [8][2]int{
		{-1, 0}, {1, 0}, {0, -1}, {0, 1},
		{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
	}

	for cell := range cells {
		for _, o := range offsets {
			n := Cell{cell.Row + o[0], cell.Col + o[1]}
			if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
				continue
			}
			t, ok := terrain[n.Row][n.Col].Byte()
			if !ok {
				continue
			}
			if IsOOBBorder(t) {
				oob[n] = true
			}
		}
	}

	return oob
}

func (r *Region) calculateDistanceToEdge(terrain [][]hole.Tile) {
	height := len(terrain)
	width := 0
	if height > 0 {
		width = len(terrain[0])
	}

	for cell := range r.Cells {
		d := min4(cell.Row, cell.Col, height-1-cell.Row, width-1-cell.Col)
		r.DistanceField[cell] = d + 1
	}
}

func min4(a, b, c, d int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	if d < m {
		m = d
	}
	return m
}
