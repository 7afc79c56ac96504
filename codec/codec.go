package codec

import (
	"errors"
	"fmt"
)

// ErrCorruptStream is returned when a compressed stream is malformed: it
// exhausts its input mid-expansion (a run-length byte with nothing yet in
// out, or a greens stream that runs out of input before producing 576
// tiles).
var ErrCorruptStream = errors.New("corrupt compressed stream")

// ErrUnencodableValue is returned by Compress when a grid byte cannot be
// represented as a literal (0x01-0x1F and 0xE0-0xFF are reserved for
// run-length and dictionary codes) and no zero-repeat dictionary entry
// stands in for it.
var ErrUnencodableValue = errors.New("value cannot be encoded")

// Kind distinguishes terrain from greens: not by inheritance, but by a
// small configuration of row width and termination policy (see
// spec's "Polymorphism" design note).
type Kind struct {
	RowWidth    int
	GreensCount int // 0 means "terminate at end of input" (terrain); >0 means "terminate once this many tiles are produced" (greens)
}

// Terrain is the codec configuration for the 22-wide terrain grid,
// terminating at end of input.
var Terrain = Kind{RowWidth: 22}

// Greens is the codec configuration for the 24x24 greens grid, terminating
// once 576 tiles have been produced.
var Greens = Kind{RowWidth: 24, GreensCount: 576}

func (k Kind) fixedSize() bool { return k.GreensCount > 0 }

// Decompress runs the two-pass expansion (stream expansion, then vertical
// fill) described in spec.md §4.2.1 against data using tables t, and
// returns a grid of rows each k.RowWidth wide.
func Decompress(data []byte, t *Tables, k Kind) ([][]uint8, error) {
	out, err := expandStream(data, t, k)
	if err != nil {
		return nil, err
	}

	rows := reshape(out, k.RowWidth)
	applyVerticalFill(rows, t)

	return rows, nil
}

func expandStream(data []byte, t *Tables, k Kind) ([]byte, error) {
	out := make([]byte, 0, len(data)*2)
	pos := 0

	for {
		if k.fixedSize() && len(out) >= k.GreensCount {
			break
		}
		if pos >= len(data) {
			if k.fixedSize() {
				return nil, fmt.Errorf("stream exhausted after %d of %d tiles: %w", len(out), k.GreensCount, ErrCorruptStream)
			}
			break
		}

		b := data[pos]
		pos++

		switch {
		case b == 0x00:
			out = append(out, 0x00)
		case b >= 0x01 && b <= 0x1F:
			if len(out) == 0 {
				return nil, fmt.Errorf("run-length byte %#02x at stream start with no preceding tile: %w", b, ErrCorruptStream)
			}
			next := t.Horizontal[out[len(out)-1]]
			for i := 0; i < int(b); i++ {
				out = append(out, next)
			}
		case b >= 0x20 && b <= 0xDF:
			out = append(out, b)
		default: // 0xE0-0xFF
			d := t.Dictionary[b-DictBase]
			out = append(out, d.FirstByte)
			last := d.FirstByte
			for i := 0; i < int(d.RepeatCount); i++ {
				last = t.Horizontal[last]
				out = append(out, last)
			}
		}
	}

	if k.fixedSize() {
		out = out[:k.GreensCount]
	} else if rem := len(out) % k.RowWidth; rem != 0 {
		for i := rem; i < k.RowWidth; i++ {
			out = append(out, 0x00)
		}
	}

	return out, nil
}

func reshape(flat []byte, rowWidth int) [][]uint8 {
	rows := make([][]uint8, 0, len(flat)/rowWidth)
	for i := 0; i < len(flat); i += rowWidth {
		end := i + rowWidth
		if end > len(flat) {
			end = len(flat)
		}
		row := make([]uint8, rowWidth)
		copy(row, flat[i:end])
		rows = append(rows, row)
	}
	return rows
}

func applyVerticalFill(rows [][]uint8, t *Tables) {
	for r := 1; r < len(rows); r++ {
		for c := range rows[r] {
			if rows[r][c] == 0x00 {
				rows[r][c] = t.Vertical[rows[r-1][c]]
			}
		}
	}
}

// Compress produces a byte stream whose Decompress, under the same tables
// and kind, equals grid. It is a single left-to-right greedy pass.
func Compress(grid [][]uint8, t *Tables, k Kind) ([]byte, error) {
	src := reverseVerticalFill(grid, t)

	flat := make([]byte, 0, len(src)*k.RowWidth)
	for _, row := range src {
		r := make([]byte, k.RowWidth)
		copy(r, row)
		flat = append(flat, r...)
	}

	var out []byte
	pos := 0
	for pos < len(flat) {
		if code, consumed, ok := t.matchDictionary(flat, pos); ok {
			out = append(out, code)
			pos += consumed
			continue
		}

		b := flat[pos]
		if b == 0x00 || (b >= 0x20 && b <= 0xDF) {
			out = append(out, b)
			pos++

			next := t.Horizontal[b]
			runLen := 0
			for runLen < 31 && pos < len(flat) && flat[pos] == next {
				pos++
				runLen++
			}
			if runLen > 0 {
				out = append(out, byte(runLen))
			}
			continue
		}

		code, ok := t.shortestCodeFor(b)
		if !ok {
			return nil, fmt.Errorf("byte %#02x at position %d has no literal or dictionary encoding: %w", b, pos, ErrUnencodableValue)
		}
		out = append(out, code)
		pos++
	}

	return out, nil
}

// reverseVerticalFill undoes pass 2 of decompression: src[r][c] = 0x00
// whenever vertical[grid[r-1][c]] == grid[r][c], recovering the "derive
// vertically" markers pass 2 will regenerate. Row 0 is copied verbatim.
func reverseVerticalFill(grid [][]uint8, t *Tables) [][]uint8 {
	src := make([][]uint8, len(grid))
	for r, row := range grid {
		out := make([]uint8, len(row))
		if r == 0 {
			copy(out, row)
		} else {
			for c, v := range row {
				if t.Vertical[grid[r-1][c]] == v {
					out[c] = 0x00
				} else {
					out[c] = v
				}
			}
		}
		src[r] = out
	}
	return src
}
