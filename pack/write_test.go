package pack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/rom"
)

func TestWriteCoursesSingleCourseRoundTrip(t *testing.T) {
	img := buildTestImage(t)
	course := buildTestCourse(t, HolesPerCourse)

	stats, err := WriteCourses(img, [][]*hole.Data{course}, Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.NumCourses)
	assert.Equal(t, HolesPerCourse, stats.NumHoles)

	for _, p := range []*rom.Patch{rom.CourseTwoMirrorPatch, rom.CourseThreeMirrorPatch, rom.MultiBankLookupPatch} {
		applied, err := p.IsApplied(img)
		require.NoError(t, err)
		assert.Truef(t, applied, "%s was not applied", p.Name)
	}

	terrainTables, greensTables, err := loadTables(img)
	require.NoError(t, err)

	for i, h := range course {
		gotMeta, gotGX, gotGY, err := img.ReadHoleMetadata(i)
		require.NoErrorf(t, err, "hole %d ReadHoleMetadata", i)
		assert.Equalf(t, h.Metadata, gotMeta, "hole %d metadata", i)
		assert.Equalf(t, h.GreenX, gotGX, "hole %d green x", i)
		assert.Equalf(t, h.GreenY, gotGY, "hole %d green y", i)

		start, end, err := img.ReadTerrainPointers(i)
		require.NoErrorf(t, err, "hole %d ReadTerrainPointers", i)
		bank, err := img.ReadBankLookup(i)
		require.NoErrorf(t, err, "hole %d ReadBankLookup", i)

		terrainBytes, err := img.ReadSwitchedRange(int(bank), start, int(end-start))
		require.NoErrorf(t, err, "hole %d reading terrain bytes", i)
		gotTerrain, err := codec.Decompress(terrainBytes, terrainTables, codec.Terrain)
		require.NoErrorf(t, err, "hole %d terrain Decompress", i)
		wantTerrain, err := tilesToBytes(h.Terrain[:h.TerrainHeight])
		require.NoErrorf(t, err, "hole %d tilesToBytes", i)
		assert.Equalf(t, wantTerrain, gotTerrain, "hole %d terrain round trip", i)

		attrBytes, err := img.ReadSwitchedRange(int(bank), end, hole.PackedAttributeSize)
		require.NoErrorf(t, err, "hole %d reading attribute bytes", i)
		assert.Equalf(t, hole.PackAttributes(h.Attributes), attrBytes, "hole %d attribute bytes", i)

		greensPtr, err := img.ReadGreensPointer(i)
		require.NoErrorf(t, err, "hole %d ReadGreensPointer", i)
		// Greens are at most 576 bytes uncompressed (one byte per tile);
		// Decompress stops once it has produced 576 tiles, so reading a
		// worst-case-sized window and letting it run past this hole's
		// actual compressed length into the next hole's data is safe.
		greensBytes, err := img.ReadSwitchedRange(rom.Bank3, greensPtr, hole.GreensSize*hole.GreensSize)
		require.NoErrorf(t, err, "hole %d reading greens bytes", i)
		gotGreens, err := codec.Decompress(greensBytes, greensTables, codec.Greens)
		require.NoErrorf(t, err, "hole %d greens Decompress", i)

		for r := 0; r < hole.GreensSize; r++ {
			wantRow, err := tilesToBytes([][]hole.Tile{h.Greens[r][:]})
			require.NoErrorf(t, err, "hole %d greens tilesToBytes", i)
			assert.Equalf(t, wantRow[0], gotGreens[r], "hole %d greens row %d", i, r)
		}
	}
}

func TestWriteCoursesTwoCoursesNoTwoMirrorPatch(t *testing.T) {
	img := buildTestImage(t)
	c1 := buildTestCourse(t, HolesPerCourse)
	c2 := buildTestCourse(t, HolesPerCourse)

	_, err := WriteCourses(img, [][]*hole.Data{c1, c2}, Options{})
	require.NoError(t, err)

	applied, err := rom.CourseTwoMirrorPatch.IsApplied(img)
	require.NoError(t, err)
	assert.False(t, applied, "CourseTwoMirrorPatch should not be applied for a two-course write")
}

func TestWriteCoursesRejectsWrongHoleCount(t *testing.T) {
	img := buildTestImage(t)
	course := buildTestCourse(t, HolesPerCourse-1)

	_, err := WriteCourses(img, [][]*hole.Data{course}, Options{})
	require.Error(t, err)
}

func TestWriteCoursesPatchIdempotentOnRewrite(t *testing.T) {
	img := buildTestImage(t)
	course := buildTestCourse(t, HolesPerCourse)

	_, err := WriteCourses(img, [][]*hole.Data{course}, Options{})
	require.NoError(t, err)
	_, err = WriteCourses(img, [][]*hole.Data{course}, Options{})
	require.NoError(t, err)
}
