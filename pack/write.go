package pack

import (
	"fmt"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/rom"
)

// HolesPerCourse is the fixed hole count of one course.
const HolesPerCourse = 18

// greensDataStart and greensDataEnd bound bank 3's greens data region
// (spec.md §4.4.5): after the 448-byte decompression tables, before the
// per-hole bank table at $A700.
const (
	greensDataStart = 0x81C0
	greensDataEnd   = rom.BankLookupAddr
)

// Options controls a WriteCourses call.
type Options struct {
	Verbose bool
}

// Stats summarizes a completed or validated write (spec.md §4.4.8).
type Stats struct {
	NumCourses          int
	NumHoles            int
	BankUsage           [3]int
	BankCapacity        [3]int
	BankAssignments     []int // per hole, in hole-index order
	TerrainBytesPerHole []int
	GreensBytesPerHole  []int
	TotalTerrainBytes   int
	TotalGreensBytes    int
}

func validateCourseShape(courses [][]*hole.Data) error {
	if len(courses) < 1 || len(courses) > 2 {
		return fmt.Errorf("expected 1 or 2 courses, got %d", len(courses))
	}
	for i, c := range courses {
		if len(c) != HolesPerCourse {
			return fmt.Errorf("course %d has %d holes, want %d", i+1, len(c), HolesPerCourse)
		}
	}
	return nil
}

func flatten(courses [][]*hole.Data) []*hole.Data {
	out := make([]*hole.Data, 0, len(courses)*HolesPerCourse)
	for _, c := range courses {
		out = append(out, c...)
	}
	return out
}

func ensurePatchesApplied(img *rom.Image, numCourses int) error {
	patches := []*rom.Patch{rom.MultiBankLookupPatch, rom.CourseThreeMirrorPatch}
	if numCourses == 1 {
		patches = append(patches, rom.CourseTwoMirrorPatch)
	}
	for _, p := range patches {
		if err := p.Apply(img); err != nil {
			return fmt.Errorf("applying patch %s: %w", p.Name, err)
		}
	}
	return nil
}

func loadTables(img *rom.Image) (terrain, greens *codec.Tables, err error) {
	th, tv, td, err := img.ReadTerrainTables()
	if err != nil {
		return nil, nil, fmt.Errorf("loading terrain tables: %w", err)
	}
	terrain, err = codec.LoadTables(th, tv, td)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing terrain tables: %w", err)
	}

	gh, gv, gd, err := img.ReadGreensTables()
	if err != nil {
		return nil, nil, fmt.Errorf("loading greens tables: %w", err)
	}
	greens, err = codec.LoadTables(gh, gv, gd)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing greens tables: %w", err)
	}

	return terrain, greens, nil
}

func writeBankTable(img *rom.Image, allocations []BankAllocation) error {
	table := make([]byte, rom.NumBankLkEnt*2)
	for _, a := range allocations {
		off := a.HoleIndex * 2
		if off < len(table) {
			table[off] = byte(a.Bank)
		}
	}
	return img.WriteSwitchedRange(rom.Bank3, rom.BankLookupAddr, table)
}

// writeGreensBank writes greens sequentially starting at greensDataStart
// and returns a 54-entry pointer list; holes beyond len(holes) point at
// hole 0's address (never read, due to the course-mirror patches, but
// valid).
func writeGreensBank(img *rom.Image, holes []HoleCompressed) ([]uint16, error) {
	total := 0
	for _, h := range holes {
		total += len(h.Greens)
	}
	available := greensDataEnd - greensDataStart
	if total > available {
		return nil, &BankOverflowError{
			HoleIndex:      -1,
			Required:       total,
			TotalRequired:  total,
			TotalAvailable: available,
		}
	}

	pointers := make([]uint16, 0, rom.NumHoles)
	addr := uint16(greensDataStart)
	first := addr
	for _, h := range holes {
		pointers = append(pointers, addr)
		if err := img.WriteSwitchedRange(rom.Bank3, addr, h.Greens); err != nil {
			return nil, fmt.Errorf("hole %d greens write: %w", h.HoleIndex, err)
		}
		addr += uint16(len(h.Greens))
	}
	for len(pointers) < rom.NumHoles {
		pointers = append(pointers, first)
	}

	return pointers, nil
}

func calculateStats(holes []HoleCompressed, allocations []BankAllocation, numCourses int) *Stats {
	s := &Stats{NumCourses: numCourses, NumHoles: len(holes)}
	for b := 0; b < 3; b++ {
		s.BankCapacity[b] = terrainBounds[b].capacity()
	}

	byHole := make(map[int]int, len(allocations))
	for _, a := range allocations {
		byHole[a.HoleIndex] = a.Bank
	}

	for _, h := range holes {
		bank := byHole[h.HoleIndex]
		size := len(h.Terrain) + len(h.Attributes)
		s.BankUsage[bank] += size
		s.BankAssignments = append(s.BankAssignments, bank)
		s.TerrainBytesPerHole = append(s.TerrainBytesPerHole, len(h.Terrain))
		s.GreensBytesPerHole = append(s.GreensBytesPerHole, len(h.Greens))
		s.TotalTerrainBytes += size
		s.TotalGreensBytes += len(h.Greens)
	}

	return s
}

// WriteCourses packs 1 or 2 courses (each exactly 18 holes) into img,
// following spec.md §4.4.7's fixed write order: apply patches, compress,
// allocate, write terrain+attributes, write the bank table, write greens,
// repaint pointer tables, repaint metadata.
func WriteCourses(img *rom.Image, courses [][]*hole.Data, opts Options) (*Stats, error) {
	if err := validateCourseShape(courses); err != nil {
		return nil, err
	}

	if err := ensurePatchesApplied(img, len(courses)); err != nil {
		return nil, err
	}

	allHoles := flatten(courses)

	terrainTables, greensTables, err := loadTables(img)
	if err != nil {
		return nil, err
	}

	compressed, err := CompressHoles(allHoles, terrainTables, greensTables)
	if err != nil {
		return nil, err
	}

	allocations, err := AllocateBanks(compressed)
	if err != nil {
		return nil, err
	}

	for i, h := range compressed {
		a := allocations[i]
		if err := img.WriteSwitchedRange(a.Bank, a.TerrainStart, h.Terrain); err != nil {
			return nil, fmt.Errorf("hole %d terrain write: %w", h.HoleIndex, err)
		}
		if err := img.WriteSwitchedRange(a.Bank, a.TerrainEnd, h.Attributes); err != nil {
			return nil, fmt.Errorf("hole %d attribute write: %w", h.HoleIndex, err)
		}
	}

	if err := writeBankTable(img, allocations); err != nil {
		return nil, fmt.Errorf("writing bank table: %w", err)
	}

	greensPointers, err := writeGreensBank(img, compressed)
	if err != nil {
		return nil, err
	}

	for i, a := range allocations {
		if err := img.WriteTerrainPointers(a.HoleIndex, a.TerrainStart, a.TerrainEnd); err != nil {
			return nil, fmt.Errorf("hole %d: %w", i, err)
		}
	}
	for holeIndex, ptr := range greensPointers {
		if err := img.WriteGreensPointer(holeIndex, ptr); err != nil {
			return nil, fmt.Errorf("hole %d: %w", holeIndex, err)
		}
	}

	for i, h := range allHoles {
		if err := img.WriteHoleMetadata(i, h.Metadata, h.GreenX, h.GreenY); err != nil {
			return nil, fmt.Errorf("hole %d metadata: %w", i, err)
		}
	}

	return calculateStats(compressed, allocations, len(courses)), nil
}
