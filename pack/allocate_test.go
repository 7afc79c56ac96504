package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func synthHoles(n, size int) []HoleCompressed {
	const attrSize = 72 // hole.PackedAttributeSize
	out := make([]HoleCompressed, n)
	for i := range out {
		// Split size between Terrain and Attributes arbitrarily; only the
		// sum matters to AllocateBanks.
		out[i] = HoleCompressed{
			HoleIndex:  i,
			Terrain:    make([]byte, size-attrSize),
			Attributes: make([]byte, attrSize),
		}
	}
	return out
}

func TestAllocateBanksFirstFit(t *testing.T) {
	// Each hole takes 1000 bytes; bank 0 has capacity 8766, so 8 holes
	// (8000 bytes) fit in bank 0 before the 9th overflows into bank 1.
	holes := synthHoles(9, 1000)

	allocations, err := AllocateBanks(holes)
	require.NoError(t, err)
	require.Len(t, allocations, 9)

	for i := 0; i < 8; i++ {
		assert.Equalf(t, 0, allocations[i].Bank, "hole %d bank", i)
	}
	assert.Equal(t, 1, allocations[8].Bank, "hole 8 bank")

	// Addresses within a bank are contiguous and increasing.
	for i := 1; i < 8; i++ {
		want := allocations[i-1].TerrainEnd + uint16(len(holes[i-1].Attributes))
		assert.Equalf(t, want, allocations[i].TerrainStart, "hole %d terrain start", i)
	}
}

// Scenario 5 from spec.md §8: 30 holes at 1072 bytes each (32,160 total)
// exceed the 26,105-byte combined capacity of the three terrain banks.
func TestAllocateBanksOverflow(t *testing.T) {
	holes := synthHoles(30, 1072)

	_, err := AllocateBanks(holes)
	require.Error(t, err)

	var boe *BankOverflowError
	require.ErrorAs(t, err, &boe)
	assert.ErrorIs(t, err, ErrBankOverflow)

	wantAvailable := terrainBounds[0].capacity() + terrainBounds[1].capacity() + terrainBounds[2].capacity()
	assert.Equal(t, wantAvailable, boe.TotalAvailable)
	assert.Equal(t, 30*1072, boe.TotalRequired)
	assert.Greater(t, boe.TotalRequired, boe.TotalAvailable)
}

func TestAllocateBanksEmpty(t *testing.T) {
	allocations, err := AllocateBanks(nil)
	require.NoError(t, err)
	assert.Empty(t, allocations)
}
