// Package hole implements the per-hole data model: the terrain grid,
// attribute grid, greens grid and metadata described in spec.md §3/§4.3,
// plus their JSON serialization.
package hole

import "fmt"

// Placeholder is the sentinel value marking a cell "to be filled."
// Deliberately outside byte range.
const Placeholder = 0x100

// Tile is a tagged value: either a byte (0-255) or the placeholder
// sentinel. It is never a bare integer, so that placeholders are
// statically excluded from any code path that wants a uint8 (see the
// "dynamic typing" design note in spec.md §9).
type Tile struct {
	value         uint16
	isPlaceholder bool
}

// Byte constructs a Tile holding the given byte value.
func Byte(b uint8) Tile {
	return Tile{value: uint16(b)}
}

// PlaceholderTile constructs a Tile holding the placeholder sentinel.
func PlaceholderTile() Tile {
	return Tile{value: Placeholder, isPlaceholder: true}
}

// Byte returns the tile's byte value and true, or (0, false) if the tile
// is a placeholder.
func (t Tile) Byte() (uint8, bool) {
	if t.isPlaceholder {
		return 0, false
	}
	return uint8(t.value), true
}

// IsPlaceholder reports whether t is the placeholder sentinel.
func (t Tile) IsPlaceholder() bool {
	return t.isPlaceholder
}

func (t Tile) String() string {
	if t.isPlaceholder {
		return "100"
	}
	return fmt.Sprintf("%02x", t.value)
}

// Point is a pixel or cell coordinate pair.
type Point struct {
	X, Y int
}

// Metadata is the per-hole metadata block of spec.md §3.
type Metadata struct {
	Par           int // 3-7
	Distance      int // 0-999, stored on the cartridge as 3 BCD bytes
	Handicap      int // 1-18
	ScrollLimit   int // (terrain_height - 28) / 2, clamped at 0
	Tee           Point
	FlagPositions [4]Point
}

// NumAttrColumns is the fixed width of the attribute grid.
const NumAttrColumns = 11

// GreensSize is the fixed width and height of the greens grid.
const GreensSize = 24

const (
	minTerrainHeight = 30
	maxTerrainHeight = 48
)

// Data is one hole: terrain, attributes, greens and metadata. A Data is
// exclusively owned by its containing course list.
type Data struct {
	HoleNum int

	// Terrain holds physical rows; TerrainHeight may be less than
	// len(Terrain) when rows have been soft-removed (see AddRowPair).
	// Each row is NumAttrColumns*2 = 22 tiles wide.
	Terrain       [][]Tile
	TerrainHeight int

	// Attributes has ceil(TerrainHeight/2) rows of NumAttrColumns
	// palette indices (0-3).
	Attributes [][]uint8

	Greens         [GreensSize][GreensSize]Tile
	GreenX, GreenY int

	Metadata Metadata
}

const terrainWidth = 2 * NumAttrColumns

// AttrRowCount returns ceil(terrainHeight/2), the number of attribute rows
// a given terrain height requires.
func AttrRowCount(terrainHeight int) int {
	return (terrainHeight + 1) / 2
}

// New builds a hole with terrainHeight rows of default (zero-byte) tiles,
// a matching attribute grid, and an all-placeholder greens grid.
func New(holeNum, terrainHeight int) *Data {
	d := &Data{HoleNum: holeNum, TerrainHeight: terrainHeight}

	d.Terrain = make([][]Tile, terrainHeight)
	for r := range d.Terrain {
		d.Terrain[r] = make([]Tile, terrainWidth)
	}

	d.Attributes = make([][]uint8, AttrRowCount(terrainHeight))
	for r := range d.Attributes {
		d.Attributes[r] = make([]uint8, NumAttrColumns)
	}

	for r := 0; r < GreensSize; r++ {
		for c := 0; c < GreensSize; c++ {
			d.Greens[r][c] = PlaceholderTile()
		}
	}

	return d
}

// RecomputeScrollLimit sets Metadata.ScrollLimit from TerrainHeight.
func (d *Data) RecomputeScrollLimit() {
	sl := (d.TerrainHeight - 28) / 2
	if sl < 0 {
		sl = 0
	}
	d.Metadata.ScrollLimit = sl
}
