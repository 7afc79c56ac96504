package pack

import (
	"errors"
	"fmt"

	"github.com/jdharms/golfrom/hole"
	"github.com/jdharms/golfrom/rom"
)

// ErrValidationFailure is wrapped by Validate's returned error, summarizing
// a compression, allocation, or greens-sizing failure without performing
// any write (spec.md §4.4.8, §7).
var ErrValidationFailure = errors.New("validation failed")

// Validate performs compression, bank allocation, and greens sizing
// against img's compression tables without writing anything to img. It
// returns the same Stats a real write would produce, or a wrapped error
// describing why the courses would not fit.
func Validate(img *rom.Image, courses [][]*hole.Data) (*Stats, error) {
	if err := validateCourseShape(courses); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailure, err)
	}

	allHoles := flatten(courses)

	terrainTables, greensTables, err := loadTables(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailure, err)
	}

	compressed, err := CompressHoles(allHoles, terrainTables, greensTables)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailure, err)
	}

	allocations, err := AllocateBanks(compressed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrValidationFailure, err)
	}

	total := 0
	for _, h := range compressed {
		total += len(h.Greens)
	}
	available := greensDataEnd - greensDataStart
	if total > available {
		return nil, fmt.Errorf("%w: greens data (%d bytes) exceeds available space (%d bytes)",
			ErrValidationFailure, total, available)
	}

	return calculateStats(compressed, allocations, len(courses)), nil
}
