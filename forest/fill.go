package forest

import (
	"sort"

	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/neighbor"
)

// DefaultMaxBacktracks is the backtrack budget used when Options.MaxBacktracks
// is zero (§4.5.5).
const DefaultMaxBacktracks = 10_000

// Options configures FillRegion.
type Options struct {
	// MaxBacktracks bounds how many times the solver backtracks before
	// falling back to the relaxation pass. Zero means DefaultMaxBacktracks.
	MaxBacktracks int
}

// Result is the outcome of filling one region.
type Result struct {
	// Tiles maps every cell of the region to its assigned tile.
	Tiles map[Cell]uint8
	// Unfilled lists cells the relaxation pass still could not resolve —
	// a diagnostic only; FillRegion never fails (§4.5.5).
	Unfilled []Cell
	// Backtracks is how many times the solver backtracked.
	Backtracks int
}

// decision is a WFC choice that can be undone: which cell was collapsed,
// which alternative tiles remain if this one leads to a contradiction, and
// a value-copy snapshot of state immediately before the choice was made.
type decision struct {
	cell         Cell
	alternatives []uint8

	superpositionSnapshot map[Cell]Set
	collapsedSnapshot     map[Cell]uint8
}

// FillRegion assigns every placeholder cell in region a forest tile using
// Wave Function Collapse constrained by stats, backtracking on
// contradiction up to opts.MaxBacktracks times before falling back to a
// best-effort relaxation pass (§4.5).
func FillRegion(terrain [][]hole.Tile, region *Region, stats *neighbor.Stats, opts Options) *Result {
	maxBacktracks := opts.MaxBacktracks
	if maxBacktracks == 0 {
		maxBacktracks = DefaultMaxBacktracks
	}

	superposition := make(map[Cell]Set, len(region.Cells))
	for cell := range region.Cells {
		superposition[cell] = AllForestTiles
	}

	collapsed := make(map[Cell]uint8, len(region.Cells))
	for cell := range region.Cells {
		propagateConstraints(cell, terrain, region, superposition, collapsed, stats)
	}

	cellsToCollapse := make(map[Cell]bool, len(region.Cells))
	for cell := range region.Cells {
		cellsToCollapse[cell] = true
	}

	var decisionStack []decision
	backtrackCount := 0

	for len(cellsToCollapse) > 0 {
		minCell, found, contradiction := findMinEntropyCell(cellsToCollapse, superposition, collapsed)

		if !found {
			if !contradiction {
				break
			}

			if len(decisionStack) == 0 || backtrackCount >= maxBacktracks {
				break
			}

			backtrackCount++
			if !backtrackTo(&decisionStack, superposition, collapsed, cellsToCollapse, region, terrain, stats) {
				break
			}
			continue
		}

		distance := region.distance(minCell)
		useBorder := distance <= borderDistanceThreshold
		patternPhase := computePatternPhase(minCell.Row, minCell.Col, collapsed)

		possibilities := superposition[minCell].Tiles()
		scored := scorePossibilitiesWithLookahead(
			possibilities, minCell, terrain, region, superposition, collapsed, distance, patternPhase, useBorder, stats,
		)

		if len(scored) == 0 {
			superposition[minCell] = 0
			continue
		}

		chosen := scored[0].tile
		var alternatives []uint8
		for _, st := range scored[1:] {
			alternatives = append(alternatives, st.tile)
		}

		if len(alternatives) > 0 {
			decisionStack = append(decisionStack, decision{
				cell:                  minCell,
				alternatives:          alternatives,
				superpositionSnapshot: cloneSuperposition(superposition),
				collapsedSnapshot:     cloneCollapsed(collapsed),
			})
		}

		collapsed[minCell] = chosen
		superposition[minCell] = NewSet(chosen)
		delete(cellsToCollapse, minCell)

		propagateConstraints(minCell, terrain, region, superposition, collapsed, stats)
	}

	var unfilled []Cell
	if len(cellsToCollapse) > 0 {
		unfilled = relaxationPass(cellsToCollapse, superposition, collapsed, terrain, region, stats)
	}

	return &Result{
		Tiles:      collapsed,
		Unfilled:   unfilled,
		Backtracks: backtrackCount,
	}
}

func cloneSuperposition(m map[Cell]Set) map[Cell]Set {
	out := make(map[Cell]Set, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneCollapsed(m map[Cell]uint8) map[Cell]uint8 {
	out := make(map[Cell]uint8, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// findMinEntropyCell returns the uncollapsed cell in cellsToCollapse with
// the smallest non-empty superposition. found is false either when every
// cell is collapsed (success — contradiction is also false), or when
// every remaining cell has an empty superposition (contradiction).
func findMinEntropyCell(
	cellsToCollapse map[Cell]bool,
	superposition map[Cell]Set,
	collapsed map[Cell]uint8,
) (cell Cell, found bool, contradiction bool) {
	minEntropy := -1
	hasUncollapsed := false

	for c := range cellsToCollapse {
		if _, ok := collapsed[c]; ok {
			continue
		}
		hasUncollapsed = true

		entropy := superposition[c].Len()
		if entropy == 0 {
			contradiction = true
			continue
		}

		if minEntropy == -1 || entropy < minEntropy {
			minEntropy = entropy
			cell = c
			found = true
		}
	}

	if !hasUncollapsed {
		return Cell{}, false, false
	}
	if !found && contradiction {
		return Cell{}, false, true
	}
	return cell, found, false
}

// backtrackTo pops decisions with no remaining alternatives, then applies
// the next alternative of the first decision that has one, restoring
// state from that decision's snapshot first. Returns false if the stack
// is exhausted without finding an alternative to try.
func backtrackTo(
	stack *[]decision,
	superposition map[Cell]Set,
	collapsed map[Cell]uint8,
	cellsToCollapse map[Cell]bool,
	region *Region,
	terrain [][]hole.Tile,
	stats *neighbor.Stats,
) bool {
	for len(*stack) > 0 {
		last := &(*stack)[len(*stack)-1]

		if len(last.alternatives) == 0 {
			*stack = (*stack)[:len(*stack)-1]
			continue
		}

		nextTile := last.alternatives[0]
		last.alternatives = last.alternatives[1:]

		for k := range superposition {
			delete(superposition, k)
		}
		for k, v := range last.superpositionSnapshot {
			superposition[k] = v
		}

		for k := range collapsed {
			delete(collapsed, k)
		}
		for k, v := range last.collapsedSnapshot {
			collapsed[k] = v
		}

		for k := range cellsToCollapse {
			delete(cellsToCollapse, k)
		}
		for c := range region.Cells {
			if _, ok := collapsed[c]; !ok {
				cellsToCollapse[c] = true
			}
		}

		collapsed[last.cell] = nextTile
		superposition[last.cell] = NewSet(nextTile)
		delete(cellsToCollapse, last.cell)

		propagateConstraints(last.cell, terrain, region, superposition, collapsed, stats)

		if len(last.alternatives) == 0 {
			*stack = (*stack)[:len(*stack)-1]
		}

		return true
	}

	return false
}

// relaxationPass is the last resort for cells the backtracking search
// could not resolve: pick the best tile still admissible against
// whatever has been resolved around it, or failing that, the best tile
// from the full forest set judged purely on immediate neighbor
// compatibility (§4.5.5). Cells are processed in row-major order for
// determinism; the original's set iteration order is not language-
// guaranteed, and fixing an order here does not change which tiles are
// admissible, only the (arbitrary) order ties are broken in.
func relaxationPass(
	cellsToCollapse map[Cell]bool,
	superposition map[Cell]Set,
	collapsed map[Cell]uint8,
	terrain [][]hole.Tile,
	region *Region,
	stats *neighbor.Stats,
) []Cell {
	var remaining []Cell
	for c := range cellsToCollapse {
		if _, ok := collapsed[c]; !ok {
			remaining = append(remaining, c)
		}
	}
	sort.Slice(remaining, func(i, j int) bool {
		if remaining[i].Row != remaining[j].Row {
			return remaining[i].Row < remaining[j].Row
		}
		return remaining[i].Col < remaining[j].Col
	})

	var unfilled []Cell

	for _, cell := range remaining {
		valid := getConstrainedPossibilities(cell, terrain, region, superposition, collapsed, stats)

		if !valid.Empty() {
			distance := region.distance(cell)
			useBorder := distance <= borderDistanceThreshold
			patternPhase := computePatternPhase(cell.Row, cell.Col, collapsed)

			if best, ok := selectBestTile(valid, distance, patternPhase, useBorder); ok {
				collapsed[cell] = best
				superposition[cell] = NewSet(best)
				delete(cellsToCollapse, cell)
				continue
			}
		}

		if fallback, ok := pickFallbackTile(cell, terrain, collapsed, stats); ok {
			collapsed[cell] = fallback
			superposition[cell] = NewSet(fallback)
			delete(cellsToCollapse, cell)
		} else {
			unfilled = append(unfilled, cell)
		}
	}

	return unfilled
}
