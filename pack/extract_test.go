package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/rom"
)

func assertHoleRoundTrip(t *testing.T, want, got *hole.Data) {
	t.Helper()

	assert.Equal(t, want.HoleNum, got.HoleNum)
	assert.Equal(t, want.TerrainHeight, got.TerrainHeight)
	assert.Equal(t, want.Metadata, got.Metadata)
	assert.Equal(t, want.GreenX, got.GreenX)
	assert.Equal(t, want.GreenY, got.GreenY)

	wantTerrain, err := tilesToBytes(want.Terrain[:want.TerrainHeight])
	require.NoError(t, err)
	gotTerrain, err := tilesToBytes(got.Terrain[:got.TerrainHeight])
	require.NoError(t, err)
	assert.Equal(t, wantTerrain, gotTerrain)

	assert.Equal(t, want.Attributes, got.Attributes)

	for r := 0; r < hole.GreensSize; r++ {
		wantRow, err := tilesToBytes([][]hole.Tile{want.Greens[r][:]})
		require.NoErrorf(t, err, "row %d", r)
		gotRow, err := tilesToBytes([][]hole.Tile{got.Greens[r][:]})
		require.NoErrorf(t, err, "row %d", r)
		assert.Equalf(t, wantRow, gotRow, "greens row %d", r)
	}
}

func TestExtractCoursesSingleCourseRoundTrip(t *testing.T) {
	img := buildTestImage(t)
	course := buildTestCourse(t, HolesPerCourse)

	_, err := WriteCourses(img, [][]*hole.Data{course}, Options{})
	require.NoError(t, err)

	extracted, err := ExtractCourses(img, 1)
	require.NoError(t, err)
	require.Len(t, extracted, 1)
	require.Len(t, extracted[0], HolesPerCourse)

	for i, want := range course {
		assertHoleRoundTrip(t, want, extracted[0][i])
	}
}

func TestExtractCoursesTwoCoursesRoundTrip(t *testing.T) {
	img := buildTestImage(t)
	c1 := buildTestCourse(t, HolesPerCourse)
	c2 := buildTestCourse(t, HolesPerCourse)

	_, err := WriteCourses(img, [][]*hole.Data{c1, c2}, Options{})
	require.NoError(t, err)

	extracted, err := ExtractCourses(img, 2)
	require.NoError(t, err)
	require.Len(t, extracted, 2)

	for i, want := range c1 {
		assertHoleRoundTrip(t, want, extracted[0][i])
	}
	for i, want := range c2 {
		assertHoleRoundTrip(t, want, extracted[1][i])
	}
}

func TestExtractCoursesRejectsBadCourseCount(t *testing.T) {
	img := buildTestImage(t)

	_, err := ExtractCourses(img, 0)
	require.Error(t, err)

	_, err = ExtractCourses(img, 3)
	require.Error(t, err)
}

func TestExtractCoursesRejectsUnpatchedRom(t *testing.T) {
	img := buildTestImage(t) // patch bytes are the original, unapplied sequence

	_, err := ExtractCourses(img, 1)
	require.Error(t, err)
}

// buildStockTestImage writes courses directly via the stock per-course
// hole-offset/terrain-bank tables and a single shared bank, without ever
// applying the multi-bank patch, mirroring what an unmodified cartridge
// looks like.
func buildStockTestImage(t *testing.T, courses [][]*hole.Data) *rom.Image {
	t.Helper()

	img := buildTestImage(t)

	terrainTables, greensTables, err := loadTables(img)
	require.NoError(t, err)

	const bank = 0
	terrainAddr := uint16(0x8000)
	greensAddr := uint16(greensDataStart)

	offsets := make([]byte, rom.NumCourses)
	for ci, holes := range courses {
		offsets[ci] = byte(ci * HolesPerCourse)

		compressed, err := CompressHoles(holes, terrainTables, greensTables)
		require.NoError(t, err)

		for h, hc := range compressed {
			holeIndex := ci*HolesPerCourse + h

			start := terrainAddr
			require.NoError(t, img.WriteSwitchedRange(bank, start, hc.Terrain))
			terrainAddr += uint16(len(hc.Terrain))
			end := terrainAddr
			require.NoError(t, img.WriteSwitchedRange(bank, end, hc.Attributes))
			terrainAddr += uint16(len(hc.Attributes))
			require.NoError(t, img.WriteTerrainPointers(holeIndex, start, end))

			gstart := greensAddr
			require.NoError(t, img.WriteSwitchedRange(rom.Bank3, gstart, hc.Greens))
			greensAddr += uint16(len(hc.Greens))
			require.NoError(t, img.WriteGreensPointer(holeIndex, gstart))

			d := holes[h]
			require.NoError(t, img.WriteHoleMetadata(holeIndex, d.Metadata, d.GreenX, d.GreenY))
		}

		require.NoError(t, img.WriteFixed(rom.CourseTerrainBankAddr+uint16(ci), byte(bank)))
	}
	require.NoError(t, img.WriteFixedRange(rom.CourseHoleOffsetAddr, offsets))

	return img
}

func TestExtractStockCoursesRoundTrip(t *testing.T) {
	c1 := buildTestCourse(t, HolesPerCourse)
	c2 := buildTestCourse(t, HolesPerCourse)
	c3 := buildTestCourse(t, HolesPerCourse)
	img := buildStockTestImage(t, [][]*hole.Data{c1, c2, c3})

	extracted, metas, err := ExtractStockCourses(img)
	require.NoError(t, err)
	require.Len(t, extracted, rom.NumCourses)
	require.Len(t, metas, rom.NumCourses)

	for ci, want := range [][]*hole.Data{c1, c2, c3} {
		assert.Equal(t, ci*HolesPerCourse, metas[ci].HoleOffset)
		assert.Equal(t, 0, metas[ci].TerrainBank)
		assert.Equal(t, rom.Bank3, metas[ci].GreensBank)
		for i, w := range want {
			assertHoleRoundTrip(t, w, extracted[ci][i])
		}
	}
}
