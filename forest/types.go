// Package forest fills contiguous placeholder regions of a hole's terrain
// grid with forest tiles using Wave Function Collapse, constrained by
// observed tile-adjacency statistics (package neighbor). See spec.md
// §4.5.
package forest

import (
	"math/bits"

	"github.com/jdharms/golfrom/neighbor"
)

// Tile ranges, per spec.md §4.5.1.
const (
	FillStart   uint8 = 0xA0
	FillEnd     uint8 = 0xA3
	BorderStart uint8 = 0xA4
	BorderEnd   uint8 = 0xBB

	// OOBBorderStart and OOBBorderEnd bound the out-of-bounds border tiles
	// used to seed a region's distance field (§4.5.2); distinct from the
	// forest border range above.
	OOBBorderStart uint8 = 0x80
	OOBBorderEnd   uint8 = 0x9B
)

// IsFill reports whether t is one of the four period-4 fill tiles.
func IsFill(t uint8) bool { return t >= FillStart && t <= FillEnd }

// IsBorder reports whether t is a forest border tile.
func IsBorder(t uint8) bool { return t >= BorderStart && t <= BorderEnd }

// IsOOBBorder reports whether t is an out-of-bounds border tile, used to
// seed distance fields.
func IsOOBBorder(t uint8) bool { return t >= OOBBorderStart && t <= OOBBorderEnd }

// Set is a bitset over the forest tile range (0xA0-0xBB, 28 values): a
// superposition cell's set of remaining candidate tiles. Being a plain
// value (not a map or slice), a Set is copied by assignment, which is
// what lets the WFC decision stack snapshot a whole superposition cheaply
// (§9's cyclic-data note: value-copy snapshots, no persistent references).
type Set uint32

func bit(t uint8) Set { return Set(1) << uint(t-FillStart) }

// NewSet returns a Set containing exactly the given tiles.
func NewSet(tiles ...uint8) Set {
	var s Set
	for _, t := range tiles {
		s = s.Add(t)
	}
	return s
}

// AllForestTiles is the full candidate set: FILL ∪ BORDER.
var AllForestTiles = func() Set {
	var s Set
	for t := int(FillStart); t <= int(BorderEnd); t++ {
		s = s.Add(uint8(t))
	}
	return s
}()

// Contains reports whether t is a member of s.
func (s Set) Contains(t uint8) bool {
	if t < FillStart || t > BorderEnd {
		return false
	}
	return s&bit(t) != 0
}

// Add returns s with t added.
func (s Set) Add(t uint8) Set {
	if t < FillStart || t > BorderEnd {
		return s
	}
	return s | bit(t)
}

// Intersect returns the members s and o have in common.
func (s Set) Intersect(o Set) Set { return s & o }

// Len returns the number of members of s (a cell's WFC entropy).
func (s Set) Len() int { return bits.OnesCount32(uint32(s)) }

// Empty reports whether s has no members (a WFC contradiction).
func (s Set) Empty() bool { return s == 0 }

// Tiles returns s's members in ascending order.
func (s Set) Tiles() []uint8 {
	out := make([]uint8, 0, s.Len())
	for t := int(FillStart); t <= int(BorderEnd); t++ {
		if s.Contains(uint8(t)) {
			out = append(out, uint8(t))
		}
	}
	return out
}

// Cell is a (row, col) terrain grid coordinate.
type Cell struct {
	Row, Col int
}

type dirVec struct {
	dir    neighbor.Direction
	dr, dc int
}

// cardinalDirs fixes iteration order for the four cardinal directions;
// used wherever the original scoring and propagation logic walks them.
var cardinalDirs = [4]dirVec{
	{neighbor.Up, -1, 0},
	{neighbor.Down, 1, 0},
	{neighbor.Left, 0, -1},
	{neighbor.Right, 0, 1},
}
