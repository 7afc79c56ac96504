package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/hole"
)

func zeroTables(t *testing.T) *codec.Tables {
	t.Helper()
	tb, err := codec.LoadTables(make([]byte, 224), make([]byte, 224), make([]byte, codec.NumDictEntries*2))
	require.NoError(t, err)
	return tb
}

func TestCompressHolesRoundTrip(t *testing.T) {
	terrainTables := zeroTables(t)
	greensTables := zeroTables(t)

	holes := []*hole.Data{buildTestHole(1, 30, 0), buildTestHole(2, 32, 7)}

	compressed, err := CompressHoles(holes, terrainTables, greensTables)
	require.NoError(t, err)
	require.Len(t, compressed, 2)

	for i, h := range holes {
		got, err := codec.Decompress(compressed[i].Terrain, terrainTables, codec.Terrain)
		require.NoErrorf(t, err, "hole %d terrain Decompress", i)
		want, err := tilesToBytes(h.Terrain[:h.TerrainHeight])
		require.NoErrorf(t, err, "hole %d tilesToBytes", i)
		assert.Equalf(t, want, got, "hole %d terrain round trip", i)

		greensRows := make([][]hole.Tile, hole.GreensSize)
		for r := 0; r < hole.GreensSize; r++ {
			greensRows[r] = h.Greens[r][:]
		}
		wantGreens, err := tilesToBytes(greensRows)
		require.NoErrorf(t, err, "hole %d greens tilesToBytes", i)
		gotGreens, err := codec.Decompress(compressed[i].Greens, greensTables, codec.Greens)
		require.NoErrorf(t, err, "hole %d greens Decompress", i)
		assert.Equalf(t, wantGreens, gotGreens, "hole %d greens round trip", i)

		assert.Lenf(t, compressed[i].Attributes, hole.PackedAttributeSize, "hole %d attributes", i)
	}
}

func TestCompressHolesRejectsPlaceholder(t *testing.T) {
	terrainTables := zeroTables(t)
	greensTables := zeroTables(t)

	h := buildTestHole(1, 30, 0)
	h.Terrain[5][5] = hole.PlaceholderTile()

	_, err := CompressHoles([]*hole.Data{h}, terrainTables, greensTables)
	require.Error(t, err)

	var ite *hole.InvalidTileError
	assert.ErrorAs(t, err, &ite)
}
