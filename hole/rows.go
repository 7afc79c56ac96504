package hole

import (
	"errors"
	"fmt"
)

// ErrRowHeightBounds is returned when a row operation would push
// TerrainHeight outside [30, 48].
var ErrRowHeightBounds = errors.New("terrain height out of bounds")

// AddRowPair increments TerrainHeight by 2 (up to 48), preferring to
// restore previously soft-removed physical rows before appending new
// default-tile rows. Pairs only; TerrainHeight remains even.
func (d *Data) AddRowPair() error {
	if d.TerrainHeight+2 > maxTerrainHeight {
		return fmt.Errorf("cannot add a row pair past %d rows: %w", maxTerrainHeight, ErrRowHeightBounds)
	}

	needed := d.TerrainHeight + 2 - len(d.Terrain)
	for i := 0; i < needed; i++ {
		row := make([]Tile, terrainWidth)
		d.Terrain = append(d.Terrain, row)
	}

	d.TerrainHeight += 2
	d.growAttributes()
	d.RecomputeScrollLimit()
	return nil
}

// RemoveRowPair decrements TerrainHeight by 2 (down to 30) without freeing
// physical row storage, so the operation is invertible by AddRowPair.
func (d *Data) RemoveRowPair() error {
	if d.TerrainHeight-2 < minTerrainHeight {
		return fmt.Errorf("cannot remove a row pair below %d rows: %w", minTerrainHeight, ErrRowHeightBounds)
	}

	d.TerrainHeight -= 2
	d.shrinkAttributes()
	d.RecomputeScrollLimit()
	return nil
}

func (d *Data) growAttributes() {
	want := AttrRowCount(d.TerrainHeight)
	for len(d.Attributes) < want {
		d.Attributes = append(d.Attributes, make([]uint8, NumAttrColumns))
	}
}

func (d *Data) shrinkAttributes() {
	want := AttrRowCount(d.TerrainHeight)
	if len(d.Attributes) > want {
		d.Attributes = d.Attributes[:want]
	}
}
