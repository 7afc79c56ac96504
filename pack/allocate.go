// Package pack implements the course-level write pipeline: compress every
// hole, allocate terrain across the three packed-terrain banks, write
// tables and metadata, repaint pointer tables, and apply the required
// code patches (spec.md §4.4).
package pack

import (
	"errors"
	"fmt"
)

// bankBound is one terrain bank's usable CPU address window, end exclusive.
type bankBound struct {
	start, end uint16
}

// terrainBounds are the three packed-terrain banks' usable windows
// (spec.md §4.4.3), framed by each bank's co-resident lookup tables.
var terrainBounds = [3]bankBound{
	{0x8000, 0xA23E}, // bank 0: 8766 bytes
	{0x8000, 0xA1E6}, // bank 1: 8678 bytes
	{0x837F, 0xA554}, // bank 2: 8661 bytes
}

func (b bankBound) capacity() int {
	return int(b.end) - int(b.start)
}

// ErrBankOverflow is wrapped by BankOverflowError when a hole's terrain
// payload cannot be placed in any remaining bank space.
var ErrBankOverflow = errors.New("bank overflow")

// BankOverflowError carries the sizing detail of a failed allocation.
type BankOverflowError struct {
	HoleIndex      int
	Required       int
	TotalRequired  int
	TotalAvailable int
}

func (e *BankOverflowError) Error() string {
	return fmt.Sprintf("hole %d terrain+attributes (%d bytes) doesn't fit in any remaining bank space; total required %d, total available %d: %v",
		e.HoleIndex, e.Required, e.TotalRequired, e.TotalAvailable, ErrBankOverflow)
}

func (e *BankOverflowError) Unwrap() error {
	return ErrBankOverflow
}

// BankAllocation is one hole's terrain bank placement.
type BankAllocation struct {
	HoleIndex    int
	Bank         int
	TerrainStart uint16 // CPU address
	TerrainEnd   uint16 // CPU address; also the attribute start
}

// AllocateBanks runs greedy first-fit bank allocation in hole index order:
// for each hole, place it in the smallest-indexed bank whose remaining
// space fits its combined terrain+attribute payload.
func AllocateBanks(holes []HoleCompressed) ([]BankAllocation, error) {
	remaining := [3]int{terrainBounds[0].capacity(), terrainBounds[1].capacity(), terrainBounds[2].capacity()}
	nextAddr := [3]uint16{terrainBounds[0].start, terrainBounds[1].start, terrainBounds[2].start}

	allocations := make([]BankAllocation, 0, len(holes))

	for _, h := range holes {
		size := len(h.Terrain) + len(h.Attributes)

		placed := false
		for bank := 0; bank < 3; bank++ {
			if remaining[bank] < size {
				continue
			}

			start := nextAddr[bank]
			end := start + uint16(len(h.Terrain))
			allocations = append(allocations, BankAllocation{
				HoleIndex:    h.HoleIndex,
				Bank:         bank,
				TerrainStart: start,
				TerrainEnd:   end,
			})

			nextAddr[bank] += uint16(size)
			remaining[bank] -= size
			placed = true
			break
		}

		if !placed {
			totalRequired := 0
			for _, hh := range holes {
				totalRequired += len(hh.Terrain) + len(hh.Attributes)
			}
			totalAvailable := terrainBounds[0].capacity() + terrainBounds[1].capacity() + terrainBounds[2].capacity()
			return nil, &BankOverflowError{
				HoleIndex:      h.HoleIndex,
				Required:       size,
				TotalRequired:  totalRequired,
				TotalAvailable: totalAvailable,
			}
		}
	}

	return allocations, nil
}
