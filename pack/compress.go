package pack

import (
	"fmt"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/hole"
)

// HoleCompressed is one hole's compressed terrain, packed attributes, and
// compressed greens, ready for bank allocation and writing.
type HoleCompressed struct {
	HoleIndex  int
	Terrain    []byte
	Attributes []byte
	Greens     []byte
}

func tilesToBytes(rows [][]hole.Tile) ([][]uint8, error) {
	out := make([][]uint8, len(rows))
	for r, row := range rows {
		brow := make([]uint8, len(row))
		for c, t := range row {
			b, ok := t.Byte()
			if !ok {
				return nil, fmt.Errorf("row %d col %d is a placeholder", r, c)
			}
			brow[c] = b
		}
		out[r] = brow
	}
	return out, nil
}

// CompressHoles validates and compresses every hole (terrain, attributes,
// greens), in order. Every hole is validated before any is compressed, so
// a single bad hole never leaves a partially-compressed batch.
func CompressHoles(holes []*hole.Data, terrainTables, greensTables *codec.Tables) ([]HoleCompressed, error) {
	for i, h := range holes {
		if err := h.Validate(i); err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
	}

	out := make([]HoleCompressed, 0, len(holes))
	for i, h := range holes {
		terrainTiles := h.Terrain[:h.TerrainHeight]
		terrainGrid, err := tilesToBytes(terrainTiles)
		if err != nil {
			return nil, fmt.Errorf("hole %d terrain: %w", i, err)
		}
		terrainCompressed, err := codec.Compress(terrainGrid, terrainTables, codec.Terrain)
		if err != nil {
			return nil, fmt.Errorf("hole %d terrain compress: %w", i, err)
		}

		greensRows := make([][]hole.Tile, hole.GreensSize)
		for r := 0; r < hole.GreensSize; r++ {
			greensRows[r] = h.Greens[r][:]
		}
		greensGrid, err := tilesToBytes(greensRows)
		if err != nil {
			return nil, fmt.Errorf("hole %d greens: %w", i, err)
		}
		greensCompressed, err := codec.Compress(greensGrid, greensTables, codec.Greens)
		if err != nil {
			return nil, fmt.Errorf("hole %d greens compress: %w", i, err)
		}

		out = append(out, HoleCompressed{
			HoleIndex:  i,
			Terrain:    terrainCompressed,
			Attributes: hole.PackAttributes(h.Attributes),
			Greens:     greensCompressed,
		})
	}

	return out, nil
}
