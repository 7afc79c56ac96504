package pack

import (
	"testing"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/rom"
)

// buildTestImage returns a blank in-memory image with the three stock
// patches' original byte sequences in place (so ensurePatchesApplied
// succeeds) and trivial compression tables (a valid, if degenerate,
// terrain/greens Tables: all-zero horizontal/vertical tables, and every
// dictionary entry expands to the single byte 0xFF, which no test hole
// contains, so the test data never produces a dictionary match).
func buildTestImage(t *testing.T) *rom.Image {
	t.Helper()

	prg := make([]byte, 16*16384)
	img, err := rom.New(prg, nil)
	if err != nil {
		t.Fatalf("rom.New: %v", err)
	}

	if err := img.WriteFixedRange(rom.MultiBankLookupPatch.Offset, rom.MultiBankLookupPatch.Original); err != nil {
		t.Fatalf("seeding multi bank lookup patch bytes: %v", err)
	}
	if err := img.WriteFixedRange(rom.CourseHoleOffsetAddr, []byte{0x00, 0x12, 0x24}); err != nil {
		t.Fatalf("seeding course hole offset table: %v", err)
	}

	dict := make([]byte, codec.NumDictEntries*2)
	for i := 0; i < len(dict); i += 2 {
		dict[i] = 0xFF
	}
	if err := img.WriteFixedRange(rom.TerrainDictionaryAddr, dict); err != nil {
		t.Fatalf("seeding terrain dictionary: %v", err)
	}
	if err := img.WriteSwitchedRange(rom.Bank3, rom.GreensDictionaryAddr, dict); err != nil {
		t.Fatalf("seeding greens dictionary: %v", err)
	}

	return img
}

// buildTestHole returns a fully-resolved hole (no placeholders). hole.New
// already zero-fills terrain, so only greens (which New leaves as
// placeholders) need resolving; zero bytes, against buildTestImage's
// tables, run-length-compress to a couple of bytes per 32 tiles,
// leaving plenty of headroom under the packed-bank capacities for
// multi-course tests. fill only varies the hole's metadata, so holes
// remain distinguishable without inflating their compressed size.
func buildTestHole(holeNum, terrainHeight int, fill byte) *hole.Data {
	d := hole.New(holeNum, terrainHeight)

	for r := 0; r < hole.GreensSize; r++ {
		for c := 0; c < hole.GreensSize; c++ {
			d.Greens[r][c] = hole.Byte(0)
		}
	}

	d.RecomputeScrollLimit()
	d.Metadata.Par = 4
	d.Metadata.Distance = 350 + int(fill)
	d.Metadata.Handicap = 5
	d.Metadata.Tee = hole.Point{X: 10, Y: 20}
	for i := range d.Metadata.FlagPositions {
		d.Metadata.FlagPositions[i] = hole.Point{X: 30 + i, Y: 40 + i}
	}
	d.GreenX, d.GreenY = 50, 60

	return d
}

func buildTestCourse(t *testing.T, numHoles int) []*hole.Data {
	t.Helper()
	holes := make([]*hole.Data, numHoles)
	for i := range holes {
		holes[i] = buildTestHole(i+1, 30, byte(i))
	}
	return holes
}
