package main

import (
	"encoding/json"
	"fmt"
	"os"

	flag "github.com/spf13/pflag"

	"github.com/jdharms/golfrom/codec"
	"github.com/jdharms/golfrom/rom"
)

type tablesJSON struct {
	TerrainHorizontal [256]uint8          `json:"terrain_horizontal"`
	TerrainVertical   [256]uint8          `json:"terrain_vertical"`
	TerrainDictionary [32]codec.DictEntry `json:"terrain_dictionary"`
	GreensHorizontal  [256]uint8          `json:"greens_horizontal"`
	GreensVertical    [256]uint8          `json:"greens_vertical"`
	GreensDictionary  [32]codec.DictEntry `json:"greens_dictionary"`
}

// runExtractTables implements `extract-tables ROM OUT.json`: reads the
// terrain and greens compression tables out of ROM and writes them as
// JSON, for inspection without a full dump.
func runExtractTables(args []string) error {
	fs := flag.NewFlagSet("extract-tables", flag.ExitOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("extract-tables: usage: extract-tables ROM OUT.json")
	}

	romPath, outPath := fs.Arg(0), fs.Arg(1)

	img, err := rom.Load(romPath)
	if err != nil {
		return fmt.Errorf("extract-tables: %w", err)
	}

	th, tv, td, err := img.ReadTerrainTables()
	if err != nil {
		return fmt.Errorf("extract-tables: %w", err)
	}
	terrain, err := codec.LoadTables(th, tv, td)
	if err != nil {
		return fmt.Errorf("extract-tables: %w", err)
	}

	gh, gv, gd, err := img.ReadGreensTables()
	if err != nil {
		return fmt.Errorf("extract-tables: %w", err)
	}
	greens, err := codec.LoadTables(gh, gv, gd)
	if err != nil {
		return fmt.Errorf("extract-tables: %w", err)
	}

	doc := tablesJSON{
		TerrainHorizontal: terrain.Horizontal,
		TerrainVertical:   terrain.Vertical,
		TerrainDictionary: terrain.Dictionary,
		GreensHorizontal:  greens.Horizontal,
		GreensVertical:    greens.Vertical,
		GreensDictionary:  greens.Dictionary,
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("extract-tables: encoding: %w", err)
	}
	if err := os.WriteFile(outPath, b, 0o644); err != nil {
		return fmt.Errorf("extract-tables: %w", err)
	}

	return nil
}
