package forest

import (
	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/neighbor"
)

// resolvedTile returns the byte value terrain/collapsed assigns to cell,
// and false if the cell is still an unresolved placeholder (either
// terrain's original placeholder, or a region cell awaiting collapse).
func resolvedTile(terrain [][]hole.Tile, collapsed map[Cell]uint8, cell Cell) (uint8, bool) {
	if t, ok := collapsed[cell]; ok {
		return t, true
	}
	if cell.Row < 0 || cell.Row >= len(terrain) {
		return 0, false
	}
	row := terrain[cell.Row]
	if cell.Col < 0 || cell.Col >= len(row) {
		return 0, false
	}
	return row[cell.Col].Byte()
}

// getConstrainedPossibilities narrows cell's current superposition to the
// tiles still admissible against every already-resolved cardinal
// neighbor, per the NeighborStats sets (§4.5.3).
func getConstrainedPossibilities(
	cell Cell,
	terrain [][]hole.Tile,
	region *Region,
	superposition map[Cell]Set,
	collapsed map[Cell]uint8,
	stats *neighbor.Stats,
) Set {
	current, ok := superposition[cell]
	if !ok {
		current = AllForestTiles
	}

	height := len(terrain)

	for _, dv := range cardinalDirs {
		n := Cell{cell.Row + dv.dr, cell.Col + dv.dc}
		if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
			continue
		}

		neighborTile, ok := resolvedTile(terrain, collapsed, n)
		if !ok {
			continue
		}

		var keep Set
		for _, candidate := range current.Tiles() {
			if stats.Valid(candidate, dv.dir, neighborTile) {
				keep = keep.Add(candidate)
			}
		}
		current = current.Intersect(keep)
	}

	return current
}

// propagateConstraints re-evaluates cell's region neighbors after cell
// has just been collapsed (or restored from a decision snapshot),
// narrowing each one's superposition and chaining to any neighbor whose
// set actually shrank, via a BFS-style worklist (§4.5.3).
func propagateConstraints(
	cell Cell,
	terrain [][]hole.Tile,
	region *Region,
	superposition map[Cell]Set,
	collapsed map[Cell]uint8,
	stats *neighbor.Stats,
) {
	height := len(terrain)
	queue := []Cell{cell}
	processed := make(map[Cell]bool)

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if processed[cur] {
			continue
		}
		processed[cur] = true

		for _, dv := range cardinalDirs {
			n := Cell{cur.Row + dv.dr, cur.Col + dv.dc}
			if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
				continue
			}
			if !region.Cells[n] {
				continue
			}
			if _, ok := collapsed[n]; ok {
				continue
			}

			old := superposition[n]
			updated := getConstrainedPossibilities(n, terrain, region, superposition, collapsed, stats)
			superposition[n] = updated

			if updated != old && !processed[n] {
				queue = append(queue, n)
			}
		}
	}
}
