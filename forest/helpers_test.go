package forest

import "github.com/jdharms/golfrom/hole"

// gridFromBytes builds a terrain grid from plain ints for test brevity:
// -1 marks a placeholder cell, anything else is taken as a literal byte
// value.
func gridFromBytes(rows [][]int) [][]hole.Tile {
	out := make([][]hole.Tile, len(rows))
	for r, row := range rows {
		out[r] = make([]hole.Tile, len(row))
		for c, v := range row {
			if v < 0 {
				out[r][c] = hole.PlaceholderTile()
			} else {
				out[r][c] = hole.Byte(uint8(v))
			}
		}
	}
	return out
}
