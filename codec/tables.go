// Package codec implements the two-pass terrain/greens compression codec:
// RLE-like horizontal/vertical run encoding plus a 32-entry greedy-longest-
// match dictionary, driven by three cartridge-resident lookup tables.
package codec

import "fmt"

// DictEntry is one of the 32 dictionary entries. Code byte 0xE0+i
// references entry i.
type DictEntry struct {
	FirstByte   uint8
	RepeatCount uint8
}

// DictBase is the first byte value (0xE0) of a dictionary code.
const DictBase = 0xE0

// NumDictEntries is the fixed size of the dictionary table.
const NumDictEntries = 32

// Tables is one set of cartridge-resident lookup tables: horizontal
// transition, vertical continuation, and dictionary. Terrain and greens
// each get their own instance. Tables are a property of the cartridge and
// are read-only after load.
type Tables struct {
	Horizontal [256]uint8
	Vertical   [256]uint8
	Dictionary [NumDictEntries]DictEntry

	expansions [NumDictEntries][]byte
	reverse    []reverseEntry
}

type reverseEntry struct {
	bytes []byte
	code  byte
}

// LoadTables builds a Tables from raw bytes as they appear in the
// cartridge. horiz and vert may be shorter than 256 bytes (224 for
// terrain, 192 for greens); entries beyond the loaded size read as 0.
// dict must hold exactly NumDictEntries*2 bytes, (first_byte,
// repeat_count) pairs.
func LoadTables(horiz, vert, dict []byte) (*Tables, error) {
	if len(dict) != NumDictEntries*2 {
		return nil, fmt.Errorf("dictionary table must be %d bytes, got %d", NumDictEntries*2, len(dict))
	}

	t := &Tables{}
	copy(t.Horizontal[:], horiz)
	copy(t.Vertical[:], vert)
	for i := 0; i < NumDictEntries; i++ {
		t.Dictionary[i] = DictEntry{
			FirstByte:   dict[2*i],
			RepeatCount: dict[2*i+1],
		}
	}

	t.buildDerived()
	return t, nil
}

// buildDerived computes, for each dictionary code, its expansion (the
// sequence produced by starting from first_byte and applying the
// horizontal-repeat step repeat_count times), and a reverse map from
// expansion bytes to matching codes, sorted by length descending so the
// encoder can probe longest-match-first.
func (t *Tables) buildDerived() {
	for i, d := range t.Dictionary {
		exp := make([]byte, 0, d.RepeatCount+1)
		exp = append(exp, d.FirstByte)
		cur := d.FirstByte
		for r := uint8(0); r < d.RepeatCount; r++ {
			cur = t.Horizontal[cur]
			exp = append(exp, cur)
		}
		t.expansions[i] = exp
	}

	t.reverse = t.reverse[:0]
	for i, exp := range t.expansions {
		t.reverse = append(t.reverse, reverseEntry{bytes: exp, code: DictBase + byte(i)})
	}
	// Sort descending by expansion length so compress() probes the
	// longest match first.
	for i := 1; i < len(t.reverse); i++ {
		for j := i; j > 0 && len(t.reverse[j].bytes) > len(t.reverse[j-1].bytes); j-- {
			t.reverse[j], t.reverse[j-1] = t.reverse[j-1], t.reverse[j]
		}
	}
}

// Expansion returns the expansion bytes of dictionary code i (0-based
// index, not the 0xE0+i encoded byte).
func (t *Tables) Expansion(i int) []byte {
	return t.expansions[i]
}

// shortestCodeFor returns the dictionary code (0xE0+i) whose expansion is
// exactly [b] (RepeatCount == 0, FirstByte == b), preferring the
// lowest-indexed match, or ok=false if none does. This is the codec's
// escape path for a byte value that cannot appear as a raw literal (see
// compress's step 3): only a zero-repeat entry consumes exactly the one
// source byte it stands in for, which is the only substitution that keeps
// decompress(compress(g)) == g guaranteed regardless of what follows it in
// the stream.
func (t *Tables) shortestCodeFor(b byte) (code byte, ok bool) {
	for i, d := range t.Dictionary {
		if d.RepeatCount == 0 && d.FirstByte == b {
			return DictBase + byte(i), true
		}
	}
	return 0, false
}

// matchDictionary probes buf[pos:] against the reverse map, longest
// expansion first, and returns the matching code and the number of bytes
// consumed, or ok=false if nothing matches.
func (t *Tables) matchDictionary(buf []byte, pos int) (code byte, consumed int, ok bool) {
	for _, re := range t.reverse {
		n := len(re.bytes)
		if n == 0 || pos+n > len(buf) {
			continue
		}
		match := true
		for k := 0; k < n; k++ {
			if buf[pos+k] != re.bytes[k] {
				match = false
				break
			}
		}
		if match {
			return re.code, n, true
		}
	}
	return 0, 0, false
}
