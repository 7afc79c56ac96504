package rom

import (
	"fmt"

	"github.com/jdharms/golfrom/hole"
)

// ReadHoleMetadata reads one hole's metadata block and green offset out of
// the fixed-bank tables (spec.md §6).
func (img *Image) ReadHoleMetadata(holeIndex int) (meta hole.Metadata, greenX, greenY int, err error) {
	par, err := img.ReadHoleByte(ParAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d par: %w", holeIndex, err)
	}
	d100, err := img.ReadHoleByte(Distance100Addr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d distance(100s): %w", holeIndex, err)
	}
	d10, err := img.ReadHoleByte(Distance10Addr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d distance(10s): %w", holeIndex, err)
	}
	d1, err := img.ReadHoleByte(Distance1Addr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d distance(1s): %w", holeIndex, err)
	}
	handicap, err := img.ReadHoleByte(HandicapAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d handicap: %w", holeIndex, err)
	}
	scrollLimit, err := img.ReadHoleByte(ScrollLimitAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d scroll limit: %w", holeIndex, err)
	}
	gx, err := img.ReadHoleByte(GreenXAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d green x: %w", holeIndex, err)
	}
	gy, err := img.ReadHoleByte(GreenYAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d green y: %w", holeIndex, err)
	}
	teeX, err := img.ReadHoleByte(TeeXAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d tee x: %w", holeIndex, err)
	}
	teeY, err := img.ReadHoleWordLE(TeeYAddr, holeIndex)
	if err != nil {
		return meta, 0, 0, fmt.Errorf("hole %d tee y: %w", holeIndex, err)
	}

	meta = hole.Metadata{
		Par:         int(par),
		Distance:    hole.BCDToInt(d100, d10, d1),
		Handicap:    int(handicap),
		ScrollLimit: int(scrollLimit),
		Tee:         hole.Point{X: int(teeX), Y: int(teeY)},
	}
	for i := range meta.FlagPositions {
		fx, err := img.ReadFlagByte(FlagXOffsetsAddr, holeIndex, i)
		if err != nil {
			return meta, 0, 0, fmt.Errorf("hole %d flag %d x: %w", holeIndex, i, err)
		}
		fy, err := img.ReadFlagByte(FlagYOffsetsAddr, holeIndex, i)
		if err != nil {
			return meta, 0, 0, fmt.Errorf("hole %d flag %d y: %w", holeIndex, i, err)
		}
		meta.FlagPositions[i] = hole.Point{X: int(fx), Y: int(fy)}
	}

	return meta, int(gx), int(gy), nil
}

// WriteHoleMetadata overwrites one hole's metadata block and green offset
// in the fixed-bank tables (spec.md §4.4.6).
func (img *Image) WriteHoleMetadata(holeIndex int, meta hole.Metadata, greenX, greenY int) error {
	if err := img.WriteHoleByte(ParAddr, holeIndex, byte(meta.Par)); err != nil {
		return fmt.Errorf("hole %d par: %w", holeIndex, err)
	}
	h, te, o := hole.IntToBCD(meta.Distance)
	if err := img.WriteHoleByte(Distance100Addr, holeIndex, h); err != nil {
		return fmt.Errorf("hole %d distance(100s): %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(Distance10Addr, holeIndex, te); err != nil {
		return fmt.Errorf("hole %d distance(10s): %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(Distance1Addr, holeIndex, o); err != nil {
		return fmt.Errorf("hole %d distance(1s): %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(HandicapAddr, holeIndex, byte(meta.Handicap)); err != nil {
		return fmt.Errorf("hole %d handicap: %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(ScrollLimitAddr, holeIndex, byte(meta.ScrollLimit)); err != nil {
		return fmt.Errorf("hole %d scroll limit: %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(GreenXAddr, holeIndex, byte(greenX)); err != nil {
		return fmt.Errorf("hole %d green x: %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(GreenYAddr, holeIndex, byte(greenY)); err != nil {
		return fmt.Errorf("hole %d green y: %w", holeIndex, err)
	}
	if err := img.WriteHoleByte(TeeXAddr, holeIndex, byte(meta.Tee.X)); err != nil {
		return fmt.Errorf("hole %d tee x: %w", holeIndex, err)
	}
	if err := img.WriteHoleWordLE(TeeYAddr, holeIndex, uint16(meta.Tee.Y)); err != nil {
		return fmt.Errorf("hole %d tee y: %w", holeIndex, err)
	}
	for i, fp := range meta.FlagPositions {
		if err := img.WriteFlagByte(FlagXOffsetsAddr, holeIndex, i, byte(fp.X)); err != nil {
			return fmt.Errorf("hole %d flag %d x: %w", holeIndex, i, err)
		}
		if err := img.WriteFlagByte(FlagYOffsetsAddr, holeIndex, i, byte(fp.Y)); err != nil {
			return fmt.Errorf("hole %d flag %d y: %w", holeIndex, i, err)
		}
	}
	return nil
}

// ReadTerrainPointers reads a hole's terrain start/end CPU address pointers.
func (img *Image) ReadTerrainPointers(holeIndex int) (start, end uint16, err error) {
	start, err = img.ReadHoleWordLE(HoleTerrainStartAddr, holeIndex)
	if err != nil {
		return 0, 0, fmt.Errorf("hole %d terrain start ptr: %w", holeIndex, err)
	}
	end, err = img.ReadHoleWordLE(HoleTerrainEndAddr, holeIndex)
	if err != nil {
		return 0, 0, fmt.Errorf("hole %d terrain end ptr: %w", holeIndex, err)
	}
	return start, end, nil
}

// WriteTerrainPointers writes a hole's terrain start/end CPU address
// pointers (end doubles as the attribute start, per spec.md §6).
func (img *Image) WriteTerrainPointers(holeIndex int, start, end uint16) error {
	if err := img.WriteHoleWordLE(HoleTerrainStartAddr, holeIndex, start); err != nil {
		return fmt.Errorf("hole %d terrain start ptr: %w", holeIndex, err)
	}
	if err := img.WriteHoleWordLE(HoleTerrainEndAddr, holeIndex, end); err != nil {
		return fmt.Errorf("hole %d terrain end ptr: %w", holeIndex, err)
	}
	return nil
}

// ReadGreensPointer reads a hole's greens CPU address pointer.
func (img *Image) ReadGreensPointer(holeIndex int) (uint16, error) {
	p, err := img.ReadHoleWordLE(HoleGreensPtrAddr, holeIndex)
	if err != nil {
		return 0, fmt.Errorf("hole %d greens ptr: %w", holeIndex, err)
	}
	return p, nil
}

// WriteGreensPointer writes a hole's greens CPU address pointer.
func (img *Image) WriteGreensPointer(holeIndex int, addr uint16) error {
	if err := img.WriteHoleWordLE(HoleGreensPtrAddr, holeIndex, addr); err != nil {
		return fmt.Errorf("hole %d greens ptr: %w", holeIndex, err)
	}
	return nil
}
