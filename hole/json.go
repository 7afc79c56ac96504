package hole

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// JSON marshaling is handled with the standard encoding/json package: it
// is an I/O convenience explicitly outside the core's scope (spec.md §1),
// and the schema is small and fixed enough that no third-party framework
// in the retrieval pack offers anything encoding/json doesn't already do
// for it (see DESIGN.md).

type pointJSON struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type flagJSON struct {
	XOffset int `json:"x_offset"`
	YOffset int `json:"y_offset"`
}

type terrainJSON struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

type attributesJSON struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Rows   [][]int `json:"rows"`
}

type greensJSON struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

type docJSON struct {
	Hole          int            `json:"hole"`
	Par           int            `json:"par"`
	Distance      int            `json:"distance"`
	Handicap      int            `json:"handicap"`
	ScrollLimit   int            `json:"scroll_limit"`
	Green         pointJSON      `json:"green"`
	Tee           pointJSON      `json:"tee"`
	FlagPositions [4]flagJSON    `json:"flag_positions"`
	Terrain       terrainJSON    `json:"terrain"`
	Attributes    attributesJSON `json:"attributes"`
	Greens        greensJSON     `json:"greens"`
}

func tileToken(t Tile) string {
	if t.IsPlaceholder() {
		return "100"
	}
	b, _ := t.Byte()
	return fmt.Sprintf("%02x", b)
}

func tokenToTile(tok string) (Tile, error) {
	if tok == "100" {
		return PlaceholderTile(), nil
	}
	v, err := strconv.ParseUint(tok, 16, 16)
	if err != nil {
		return Tile{}, fmt.Errorf("invalid tile token %q: %w", tok, err)
	}
	if v > 0xFF {
		return Tile{}, fmt.Errorf("tile token %q out of byte range", tok)
	}
	return Byte(uint8(v)), nil
}

func rowToTokens(row []Tile) string {
	toks := make([]string, len(row))
	for i, t := range row {
		toks[i] = tileToken(t)
	}
	return strings.Join(toks, " ")
}

func rowFromTokens(s string, width int) ([]Tile, error) {
	fields := strings.Fields(s)
	if len(fields) != width {
		return nil, fmt.Errorf("row has %d tokens, want %d", len(fields), width)
	}
	row := make([]Tile, width)
	for i, f := range fields {
		t, err := tokenToTile(f)
		if err != nil {
			return nil, err
		}
		row[i] = t
	}
	return row, nil
}

// MarshalJSON serializes d per spec.md §6's hole JSON schema.
func (d *Data) MarshalJSON() ([]byte, error) {
	doc := docJSON{
		Hole:        d.HoleNum,
		Par:         d.Metadata.Par,
		Distance:    d.Metadata.Distance,
		Handicap:    d.Metadata.Handicap,
		ScrollLimit: d.Metadata.ScrollLimit,
		Green:       pointJSON{X: d.GreenX, Y: d.GreenY},
		Tee:         pointJSON{X: d.Metadata.Tee.X, Y: d.Metadata.Tee.Y},
	}
	for i, fp := range d.Metadata.FlagPositions {
		doc.FlagPositions[i] = flagJSON{XOffset: fp.X, YOffset: fp.Y}
	}

	doc.Terrain = terrainJSON{
		Width:  terrainWidth,
		Height: d.TerrainHeight,
		Rows:   make([]string, d.TerrainHeight),
	}
	for r := 0; r < d.TerrainHeight; r++ {
		doc.Terrain.Rows[r] = rowToTokens(d.Terrain[r])
	}

	doc.Attributes = attributesJSON{
		Width:  NumAttrColumns,
		Height: len(d.Attributes),
		Rows:   make([][]int, len(d.Attributes)),
	}
	for r, row := range d.Attributes {
		ints := make([]int, len(row))
		for c, v := range row {
			ints[c] = int(v)
		}
		doc.Attributes.Rows[r] = ints
	}

	doc.Greens = greensJSON{
		Width:  GreensSize,
		Height: GreensSize,
		Rows:   make([]string, GreensSize),
	}
	for r := 0; r < GreensSize; r++ {
		doc.Greens.Rows[r] = rowToTokens(d.Greens[r][:])
	}

	return json.Marshal(doc)
}

// UnmarshalJSON populates d per spec.md §6's hole JSON schema.
func (d *Data) UnmarshalJSON(b []byte) error {
	var doc docJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	d.HoleNum = doc.Hole
	d.Metadata.Par = doc.Par
	d.Metadata.Distance = doc.Distance
	d.Metadata.Handicap = doc.Handicap
	d.Metadata.ScrollLimit = doc.ScrollLimit
	d.GreenX, d.GreenY = doc.Green.X, doc.Green.Y
	d.Metadata.Tee = Point{X: doc.Tee.X, Y: doc.Tee.Y}
	for i, fp := range doc.FlagPositions {
		d.Metadata.FlagPositions[i] = Point{X: fp.XOffset, Y: fp.YOffset}
	}

	if doc.Terrain.Width != terrainWidth {
		return fmt.Errorf("terrain width %d, want %d", doc.Terrain.Width, terrainWidth)
	}
	d.TerrainHeight = doc.Terrain.Height
	d.Terrain = make([][]Tile, len(doc.Terrain.Rows))
	for r, s := range doc.Terrain.Rows {
		row, err := rowFromTokens(s, terrainWidth)
		if err != nil {
			return fmt.Errorf("terrain row %d: %w", r, err)
		}
		d.Terrain[r] = row
	}

	d.Attributes = make([][]uint8, len(doc.Attributes.Rows))
	for r, row := range doc.Attributes.Rows {
		out := make([]uint8, len(row))
		for c, v := range row {
			out[c] = uint8(v)
		}
		d.Attributes[r] = out
	}

	if doc.Greens.Width != GreensSize || doc.Greens.Height != GreensSize {
		return fmt.Errorf("greens must be %dx%d", GreensSize, GreensSize)
	}
	for r, s := range doc.Greens.Rows {
		row, err := rowFromTokens(s, GreensSize)
		if err != nil {
			return fmt.Errorf("greens row %d: %w", r, err)
		}
		copy(d.Greens[r][:], row)
	}

	return nil
}
