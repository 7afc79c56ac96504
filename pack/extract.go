package pack

import (
	"fmt"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/rom"
)

// CourseNames are the three stock course directory names, in fixed-bank
// table order (original_source/golf/core/rom_reader.py's COURSES).
var CourseNames = [rom.NumCourses]string{"japan", "us", "uk"}

// CourseDisplayNames are CourseNames' human-readable form, for course.json.
var CourseDisplayNames = [rom.NumCourses]string{"Japan", "US", "UK"}

// CourseMeta carries the stock course-level table values ExtractStockCourses
// reads for each course, for the dump verb's course.json (spec.md §6).
type CourseMeta struct {
	HoleOffset  int
	TerrainBank int
	GreensBank  int
}

// greensReadWindow bounds how many compressed bytes extractHole reads
// starting at a hole's greens pointer. codec.Decompress self-terminates
// once it has produced 576 tiles (codec.Greens), so this only needs to
// comfortably exceed the longest real compressed greens blob; the
// original tool's own exact-size recovery pass
// (find_actual_greens_size, course_writer.py) uses the same 400-byte
// ceiling as its search bound for the same reason (see DESIGN.md).
const greensReadWindow = 400

// ExtractCourses reconstructs up to 2 courses of hole.Data from a ROM
// this tool has previously packed with WriteCourses: terrain banks come
// from the per-hole lookup table the multi-bank patch installs at bank 3
// $A700, not the stock per-course table (which the patch makes dead).
// It is WriteCourses run backwards, used by the write verb to preserve
// whatever course currently occupies the slot it isn't replacing, and
// for round-trip testing.
//
// ExtractCourses errors if MultiBankLookupPatch isn't applied: reading
// $A700 against an unpatched cartridge returns whatever code or data
// happens to live there instead of a bank table. Dumping a stock
// cartridge must use ExtractStockCourses instead.
func ExtractCourses(img *rom.Image, numCourses int) ([][]*hole.Data, error) {
	if numCourses < 1 || numCourses > 2 {
		return nil, fmt.Errorf("expected 1 or 2 courses, got %d", numCourses)
	}

	applied, err := rom.MultiBankLookupPatch.IsApplied(img)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, fmt.Errorf("multi-bank lookup patch not applied, use ExtractStockCourses for an unpatched cartridge: %w", rom.ErrPatch)
	}

	terrainTables, greensTables, err := loadTables(img)
	if err != nil {
		return nil, err
	}

	courses := make([][]*hole.Data, numCourses)
	for c := 0; c < numCourses; c++ {
		holes := make([]*hole.Data, HolesPerCourse)
		for h := 0; h < HolesPerCourse; h++ {
			idx := c*HolesPerCourse + h
			bank, err := img.ReadBankLookup(idx)
			if err != nil {
				return nil, fmt.Errorf("hole %d: bank lookup: %w", idx, err)
			}
			d, err := extractHole(img, idx, h+1, int(bank), terrainTables, greensTables)
			if err != nil {
				return nil, fmt.Errorf("hole %d: %w", idx, err)
			}
			holes[h] = d
		}
		courses[c] = holes
	}

	return courses, nil
}

// ExtractStockCourses reconstructs all rom.NumCourses courses of
// hole.Data from a stock, unmodified cartridge, using the stock
// per-course hole-offset ($DBBB) and terrain-bank ($DBBE) tables
// (original_source/tools/dump.py:55-56) rather than the per-hole bank
// table the write path installs. Greens always live in bank 3 regardless
// of course. This is what the dump verb uses, since the only ROM a user
// would actually dump is an unmodified cartridge.
func ExtractStockCourses(img *rom.Image) ([][]*hole.Data, []CourseMeta, error) {
	terrainTables, greensTables, err := loadTables(img)
	if err != nil {
		return nil, nil, err
	}

	courses := make([][]*hole.Data, rom.NumCourses)
	metas := make([]CourseMeta, rom.NumCourses)
	for c := 0; c < rom.NumCourses; c++ {
		holeOffset, err := img.ReadCourseHoleOffset(c)
		if err != nil {
			return nil, nil, fmt.Errorf("course %d: hole offset: %w", c, err)
		}
		terrainBank, err := img.ReadCourseTerrainBank(c)
		if err != nil {
			return nil, nil, fmt.Errorf("course %d: terrain bank: %w", c, err)
		}
		metas[c] = CourseMeta{
			HoleOffset:  int(holeOffset),
			TerrainBank: int(terrainBank),
			GreensBank:  rom.Bank3,
		}

		holes := make([]*hole.Data, HolesPerCourse)
		for h := 0; h < HolesPerCourse; h++ {
			idx := int(holeOffset) + h
			d, err := extractHole(img, idx, h+1, int(terrainBank), terrainTables, greensTables)
			if err != nil {
				return nil, nil, fmt.Errorf("course %d hole %d: %w", c, h+1, err)
			}
			holes[h] = d
		}
		courses[c] = holes
	}

	return courses, metas, nil
}

func extractHole(img *rom.Image, holeIndex, holeNum, bank int, terrainTables, greensTables *codec.Tables) (*hole.Data, error) {
	start, end, err := img.ReadTerrainPointers(holeIndex)
	if err != nil {
		return nil, fmt.Errorf("terrain pointers: %w", err)
	}
	if end < start {
		return nil, fmt.Errorf("terrain end %#04x precedes start %#04x", end, start)
	}

	terrainBytes, err := img.ReadSwitchedRange(bank, start, int(end-start))
	if err != nil {
		return nil, fmt.Errorf("reading compressed terrain: %w", err)
	}
	terrainGrid, err := codec.Decompress(terrainBytes, terrainTables, codec.Terrain)
	if err != nil {
		return nil, fmt.Errorf("decompressing terrain: %w", err)
	}

	attrBytes, err := img.ReadSwitchedRange(bank, end, hole.PackedAttributeSize)
	if err != nil {
		return nil, fmt.Errorf("reading packed attributes: %w", err)
	}

	greensPtr, err := img.ReadGreensPointer(holeIndex)
	if err != nil {
		return nil, fmt.Errorf("greens pointer: %w", err)
	}
	// 0xC000 is the end of the CPU switched window ($8000-$BFFF); clamp so a hole near the end of the bank
	// doesn't ask ReadSwitchedRange to cross out of it.
	window := greensReadWindow
	if avail := 0xC000 - int(greensPtr); avail < window {
		window = avail
	}
	if window < 0 {
		window = 0
	}
	greensBytes, err := img.ReadSwitchedRange(rom.Bank3, greensPtr, window)
	if err != nil {
		return nil, fmt.Errorf("reading compressed greens: %w", err)
	}
	greensGrid, err := codec.Decompress(greensBytes, greensTables, codec.Greens)
	if err != nil {
		return nil, fmt.Errorf("decompressing greens: %w", err)
	}

	meta, gx, gy, err := img.ReadHoleMetadata(holeIndex)
	if err != nil {
		return nil, fmt.Errorf("metadata: %w", err)
	}

	terrainHeight := len(terrainGrid)
	d := &hole.Data{
		HoleNum:       holeNum,
		TerrainHeight: terrainHeight,
		Terrain:       bytesToTiles(terrainGrid),
		Attributes:    hole.UnpackAttributes(attrBytes, hole.AttrRowCount(terrainHeight)),
		GreenX:        gx,
		GreenY:        gy,
		Metadata:      meta,
	}
	for r := 0; r < hole.GreensSize && r < len(greensGrid); r++ {
		for c := 0; c < hole.GreensSize && c < len(greensGrid[r]); c++ {
			d.Greens[r][c] = hole.Byte(greensGrid[r][c])
		}
	}

	return d, nil
}

func bytesToTiles(rows [][]uint8) [][]hole.Tile {
	out := make([][]hole.Tile, len(rows))
	for r, row := range rows {
		trow := make([]hole.Tile, len(row))
		for c, b := range row {
			trow[c] = hole.Byte(b)
		}
		out[r] = trow
	}
	return out
}
