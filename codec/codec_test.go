package codec

import (
	"errors"
	"reflect"
	"testing"
)

func mustTables(t *testing.T, horiz, vert map[byte]byte, dict [NumDictEntries]DictEntry) *Tables {
	t.Helper()

	var h, v [256]byte
	for k, val := range horiz {
		h[k] = val
	}
	for k, val := range vert {
		v[k] = val
	}

	dictBytes := make([]byte, NumDictEntries*2)
	for i, d := range dict {
		dictBytes[2*i] = d.FirstByte
		dictBytes[2*i+1] = d.RepeatCount
	}

	tb, err := LoadTables(h[:], v[:], dictBytes)
	if err != nil {
		t.Fatalf("LoadTables: %v", err)
	}
	return tb
}

// Scenario 1 from spec.md §8: terrain decompress + pass-2 vertical fill.
func TestDecompressVerticalFill(t *testing.T) {
	tb := mustTables(t, map[byte]byte{0x40: 0x41}, map[byte]byte{0x40: 0x50, 0x41: 0x51}, [NumDictEntries]DictEntry{})

	rows, err := Decompress([]byte{0x40, 0x02, 0x00, 0x00}, tb, Kind{RowWidth: 2})
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	want := [][]uint8{{0x40, 0x41}, {0x41, 0x51}, {0x51, 0x00}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %v, want %v", rows, want)
	}
}

// Scenario 2 from spec.md §8: dictionary expansion.
func TestDictionaryExpansion(t *testing.T) {
	var dict [NumDictEntries]DictEntry
	dict[0] = DictEntry{FirstByte: 0xA0, RepeatCount: 3}
	tb := mustTables(t, map[byte]byte{0xA0: 0xA1, 0xA1: 0xA2, 0xA2: 0xA3}, nil, dict)

	rows, err := Decompress([]byte{0xE0}, tb, Kind{RowWidth: 4})
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	want := [][]uint8{{0xA0, 0xA1, 0xA2, 0xA3}}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("got %v, want %v", rows, want)
	}
}

func TestDecompressGreensTermination(t *testing.T) {
	tb := mustTables(t, nil, nil, [NumDictEntries]DictEntry{})

	data := make([]byte, 600)
	for i := range data {
		data[i] = 0x21
	}

	rows, err := Decompress(data, tb, Greens)
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	total := 0
	for _, r := range rows {
		total += len(r)
	}
	if total != 576 {
		t.Errorf("got %d tiles, want 576", total)
	}
}

func TestDecompressGreensCorruptStream(t *testing.T) {
	tb := mustTables(t, nil, nil, [NumDictEntries]DictEntry{})

	_, err := Decompress([]byte{0x21, 0x21}, tb, Greens)
	if !errors.Is(err, ErrCorruptStream) {
		t.Errorf("err = %v, want ErrCorruptStream", err)
	}
}

func TestDecompressRunAtStreamStartIsCorrupt(t *testing.T) {
	tb := mustTables(t, nil, nil, [NumDictEntries]DictEntry{})

	_, err := Decompress([]byte{0x05}, tb, Terrain)
	if !errors.Is(err, ErrCorruptStream) {
		t.Errorf("err = %v, want ErrCorruptStream", err)
	}
}

// ∀ well-formed grid g and matching tables: decompress(compress(g)) == g.
func TestCompressDecompressRoundTrip(t *testing.T) {
	var dict [NumDictEntries]DictEntry
	dict[0] = DictEntry{FirstByte: 0x21, RepeatCount: 0}
	dict[1] = DictEntry{FirstByte: 0xA0, RepeatCount: 2}
	tb := mustTables(t, map[byte]byte{
		0x30: 0x31,
		0x31: 0x31,
		0xA0: 0xA1,
		0xA1: 0xA2,
	}, map[byte]byte{
		0x30: 0x40,
		0x31: 0x41,
		0x00: 0x00,
	}, dict)

	cases := [][][]uint8{
		{{0x30, 0x31, 0x31, 0x31}, {0x40, 0x41, 0x41, 0x41}},
		{{0xA0, 0xA1, 0xA2, 0x20}},
		{{0x20, 0x20, 0x20, 0x20}, {0x20, 0x20, 0x20, 0x20}, {0x20, 0x20, 0x20, 0x20}},
		// vertical[0x20] is 0 and the cell below it is a raw 0x00.
		{{0x20, 0x00}, {0x00, 0x00}},
	}

	for i, grid := range cases {
		compressed, err := Compress(grid, tb, Kind{RowWidth: len(grid[0])})
		if err != nil {
			t.Errorf("%d: Compress: %v", i, err)
			continue
		}

		got, err := Decompress(compressed, tb, Kind{RowWidth: len(grid[0])})
		if err != nil {
			t.Errorf("%d: Decompress: %v", i, err)
			continue
		}

		if !reflect.DeepEqual(got, grid) {
			t.Errorf("%d: round trip got %v, want %v", i, got, grid)
		}
	}
}

func TestCompressUnencodableValue(t *testing.T) {
	tb := mustTables(t, nil, nil, [NumDictEntries]DictEntry{})

	_, err := Compress([][]uint8{{0x05, 0x21}}, tb, Kind{RowWidth: 2})
	if !errors.Is(err, ErrUnencodableValue) {
		t.Errorf("err = %v, want ErrUnencodableValue", err)
	}
}

func TestCompressEscapesViaZeroRepeatDictEntry(t *testing.T) {
	var dict [NumDictEntries]DictEntry
	dict[3] = DictEntry{FirstByte: 0xE5, RepeatCount: 0}
	tb := mustTables(t, nil, nil, dict)

	compressed, err := Compress([][]uint8{{0xE5, 0x21}}, tb, Kind{RowWidth: 2})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	got, err := Decompress(compressed, tb, Kind{RowWidth: 2})
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}

	want := [][]uint8{{0xE5, 0x21}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}
