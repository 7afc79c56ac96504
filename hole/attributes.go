package hole

// PackedAttributeSize is the fixed size, in bytes, of the cartridge's
// packed attribute table for one hole.
const PackedAttributeSize = 72

const megatilesPerRowPair = 6 // 12 strip columns / 2

// stripValue returns the value at strip column k (0 = the HUD column,
// always 0; k >= 1 maps to real attribute column k-1) of an attribute row.
// A nil row reads as all zeros (PackAttributes never passes one: it
// duplicates the top row for a final, unpaired row).
func stripValue(row []uint8, k int) uint8 {
	if k == 0 || row == nil {
		return 0
	}
	return row[k-1]
}

// PackAttributes packs attrs (each row NumAttrColumns palette indices
// 0-3) into the cartridge's 72-byte representation: a zero HUD column is
// prepended to each row-pair, then each pair of adjacent strip columns
// across (top, bottom) is packed into one byte TL|(TR<<2)|(BL<<4)|(BR<<6).
// Output is always padded to PackedAttributeSize bytes. For a trailing
// unpaired row, the bottom half duplicates the top row rather than
// reading zero, matching the original packer's behavior.
func PackAttributes(attrs [][]uint8) []byte {
	out := make([]byte, PackedAttributeSize)

	rowPairs := (len(attrs) + 1) / 2
	pos := 0
	for p := 0; p < rowPairs; p++ {
		var top, bottom []uint8
		if 2*p < len(attrs) {
			top = attrs[2*p]
		}
		if 2*p+1 < len(attrs) {
			bottom = attrs[2*p+1]
		} else {
			bottom = top
		}

		for m := 0; m < megatilesPerRowPair; m++ {
			k0, k1 := 2*m, 2*m+1
			tl := stripValue(top, k0)
			tr := stripValue(top, k1)
			bl := stripValue(bottom, k0)
			br := stripValue(bottom, k1)

			if pos < len(out) {
				out[pos] = (tl & 0x03) | (tr&0x03)<<2 | (bl&0x03)<<4 | (br&0x03)<<6
				pos++
			}
		}
	}

	return out
}

// UnpackAttributes inverts PackAttributes, dropping the HUD column and
// producing exactly rowCount rows of NumAttrColumns palette indices.
func UnpackAttributes(data []byte, rowCount int) [][]uint8 {
	rows := make([][]uint8, rowCount)
	for i := range rows {
		rows[i] = make([]uint8, NumAttrColumns)
	}

	rowPairs := (rowCount + 1) / 2
	pos := 0
	for p := 0; p < rowPairs; p++ {
		for m := 0; m < megatilesPerRowPair; m++ {
			var b byte
			if pos < len(data) {
				b = data[pos]
			}
			pos++

			tl := b & 0x03
			tr := (b >> 2) & 0x03
			bl := (b >> 4) & 0x03
			br := (b >> 6) & 0x03

			k0, k1 := 2*m, 2*m+1
			if k0 >= 1 && 2*p < rowCount {
				rows[2*p][k0-1] = tl
			}
			if k1 >= 1 && 2*p < rowCount {
				rows[2*p][k1-1] = tr
			}
			if k0 >= 1 && 2*p+1 < rowCount {
				rows[2*p+1][k0-1] = bl
			}
			if k1 >= 1 && 2*p+1 < rowCount {
				rows[2*p+1][k1-1] = br
			}
		}
	}

	return rows
}
