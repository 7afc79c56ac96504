package forest

import (
	"math"
	"sort"

	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/neighbor"
)

// neighborFrequencyThreshold is the minimum observed occurrence count a
// neighbor relationship must clear before it contributes to frequency
// scoring; below it, the relationship is too rare in the corpus to trust
// (§4.5.4.3).
const neighborFrequencyThreshold = 5

// borderDistanceThreshold: cells at this distance or less from the
// out-of-bounds border are scored toward border tiles rather than fill.
const borderDistanceThreshold = 1

// mod4 is Euclidean mod 4 (always non-negative), matching Python's `%`
// for the pattern-phase arithmetic below, which Go's `%` does not give
// for negative operands.
func mod4(x int) int {
	m := x % 4
	if m < 0 {
		m += 4
	}
	return m
}

// computePatternPhase derives the expected fill-tile phase at (row, col)
// from the leftmost already-collapsed fill tile in the same row, or from
// row parity if the row has no fill tile yet (§4.5.4.2).
func computePatternPhase(row, col int, collapsed map[Cell]uint8) int {
	leftmostCol := -1
	leftmostTile := uint8(0)

	for cell, tile := range collapsed {
		if cell.Row != row || !IsFill(tile) {
			continue
		}
		if leftmostCol == -1 || cell.Col < leftmostCol {
			leftmostCol = cell.Col
			leftmostTile = tile
		}
	}

	if leftmostCol == -1 {
		base := 0
		if row%2 == 0 {
			base = 2
		}
		return mod4(base + col)
	}

	leftmostPhase := int(leftmostTile - FillStart)
	return mod4(leftmostPhase + (col - leftmostCol))
}

// scoreTile scores a candidate by category bias and pattern match alone,
// ignoring neighbor context (§4.5.4, points 1-2).
func scoreTile(tile uint8, distance, patternPhase int, useBorder bool) int {
	score := 0

	isBorder := IsBorder(tile)
	isFill := IsFill(tile)

	if (useBorder && isBorder) || (!useBorder && isFill) {
		score += 100
	}

	if isFill {
		expected := FillStart + uint8(patternPhase)
		if tile == expected {
			score += 50
		}
	}

	return score
}

// scoreTileWithContext adds neighbor-frequency scoring (§4.5.4, point 3)
// on top of scoreTile.
func scoreTileWithContext(
	tile uint8,
	cell Cell,
	terrain [][]hole.Tile,
	collapsed map[Cell]uint8,
	distance, patternPhase int,
	useBorder bool,
	stats *neighbor.Stats,
) float64 {
	base := float64(scoreTile(tile, distance, patternPhase, useBorder))

	height := len(terrain)
	frequencyScore := 0.0
	neighborCount := 0

	for _, dv := range cardinalDirs {
		n := Cell{cell.Row + dv.dr, cell.Col + dv.dc}
		if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
			continue
		}

		neighborTile, ok := resolvedTile(terrain, collapsed, n)
		if !ok {
			continue
		}

		freq := stats.Frequency(tile, dv.dir, neighborTile)
		if freq > neighborFrequencyThreshold {
			frequencyScore += 50 * math.Log2(1+float64(freq))
			neighborCount++

			if IsFill(tile) && IsFill(neighborTile) {
				frequencyScore += 30
			}
		}
	}

	if neighborCount > 0 {
		frequencyScore /= float64(neighborCount)
	}

	return base + frequencyScore
}

type scoredTile struct {
	score float64
	tile  uint8
}

// sortScoredDesc sorts by score descending, breaking ties by tile value
// descending — matching Python's `(score, tile)` tuple sort under
// reverse=True, which compares both fields in the same direction.
func sortScoredDesc(s []scoredTile) {
	sort.Slice(s, func(i, j int) bool {
		if s[i].score != s[j].score {
			return s[i].score > s[j].score
		}
		return s[i].tile > s[j].tile
	})
}

// scorePossibilitiesWithLookahead scores every candidate tile for cell,
// including a one-step lookahead that tentatively collapses and
// propagates to detect contradictions the choice would cause (§4.5.4,
// point 4). Returned in descending score order.
func scorePossibilitiesWithLookahead(
	possibilities []uint8,
	cell Cell,
	terrain [][]hole.Tile,
	region *Region,
	superposition map[Cell]Set,
	collapsed map[Cell]uint8,
	distance, patternPhase int,
	useBorder bool,
	stats *neighbor.Stats,
) []scoredTile {
	out := make([]scoredTile, 0, len(possibilities))

	for _, tile := range possibilities {
		base := scoreTileWithContext(tile, cell, terrain, collapsed, distance, patternPhase, useBorder, stats)

		testSuperposition := make(map[Cell]Set, len(superposition))
		for k, v := range superposition {
			testSuperposition[k] = v
		}
		testCollapsed := make(map[Cell]uint8, len(collapsed)+1)
		for k, v := range collapsed {
			testCollapsed[k] = v
		}

		testCollapsed[cell] = tile
		testSuperposition[cell] = NewSet(tile)

		propagateConstraints(cell, terrain, region, testSuperposition, testCollapsed, stats)

		contradictions := 0
		totalEntropy := 0
		for c := range region.Cells {
			if _, done := testCollapsed[c]; done {
				continue
			}
			entropy := testSuperposition[c].Len()
			if entropy == 0 {
				contradictions++
			}
			totalEntropy += entropy
		}

		combined := base - float64(contradictions)*10000 + float64(totalEntropy)*0.1
		out = append(out, scoredTile{score: combined, tile: tile})
	}

	sortScoredDesc(out)
	return out
}

// selectBestTile picks the highest-scoring tile among valid (relaxation
// pass, no lookahead); ties favor the higher tile value, matching
// Python's `(score, tile)` descending tuple sort.
func selectBestTile(valid Set, distance, patternPhase int, useBorder bool) (uint8, bool) {
	tiles := valid.Tiles()
	if len(tiles) == 0 {
		return 0, false
	}

	best := tiles[0]
	bestScore := scoreTile(best, distance, patternPhase, useBorder)
	for _, tile := range tiles[1:] {
		s := scoreTile(tile, distance, patternPhase, useBorder)
		if s > bestScore || (s == bestScore && tile > best) {
			bestScore = s
			best = tile
		}
	}
	return best, true
}

// pickFallbackTile is the last resort when even the relaxed constrained
// set is empty: score every forest tile by how many of its immediate
// neighbors it's compatible with, ignoring everything else, and take the
// best. Ties favor the lower tile value, matching Python's `>` comparison
// over a fixed ascending iteration of the tile range (§4.5.5).
func pickFallbackTile(cell Cell, terrain [][]hole.Tile, collapsed map[Cell]uint8, stats *neighbor.Stats) (uint8, bool) {
	height := len(terrain)

	best := uint8(0)
	found := false
	bestScore := -1

	for t := int(FillStart); t <= int(BorderEnd); t++ {
		tile := uint8(t)
		score := 0
		validDirections := 0
		tileKnown := stats.HasTile(tile)

		for _, dv := range cardinalDirs {
			n := Cell{cell.Row + dv.dr, cell.Col + dv.dc}
			if n.Row < 0 || n.Row >= height || n.Col < 0 || n.Col >= len(terrain[n.Row]) {
				validDirections++
				continue
			}

			neighborTile, ok := resolvedTile(terrain, collapsed, n)
			if !ok {
				validDirections++
				continue
			}

			if tileKnown {
				if stats.Valid(tile, dv.dir, neighborTile) {
					score += 2
					validDirections++
				}
			} else {
				validDirections++
			}
		}

		total := score*10 + validDirections
		if total > bestScore {
			bestScore = total
			best = tile
			found = true
		}
	}

	return best, found
}
