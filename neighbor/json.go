package neighbor

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

// JSON marshaling mirrors hole's: the standard library is enough for a
// schema this small, and the on-disk shape matches the corpus's existing
// terrain_neighbors.json so a Stats built here round-trips through tools
// that already speak that format.

type metadataJSON struct {
	TotalHolesAnalyzed int    `json:"total_holes_analyzed"`
	TotalUniqueTiles   int    `json:"total_unique_tiles"`
	TotalRelationships int    `json:"total_relationships"`
	AnalysisTool       string `json:"analysis_tool"`
}

type directionsJSON struct {
	Up    map[string]int `json:"up"`
	Down  map[string]int `json:"down"`
	Left  map[string]int `json:"left"`
	Right map[string]int `json:"right"`
}

type statsJSON struct {
	Metadata  metadataJSON              `json:"metadata"`
	Neighbors map[string]directionsJSON `json:"neighbors"`
}

func hexKey(b uint8) string {
	return fmt.Sprintf("0x%02X", b)
}

func parseHexKey(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 0, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid tile key %q: %w", s, err)
	}
	if v > 0xFF {
		return 0, fmt.Errorf("tile key %q out of byte range", s)
	}
	return uint8(v), nil
}

func direction(d Direction, dirs directionsJSON) map[string]int {
	switch d {
	case Up:
		return dirs.Up
	case Down:
		return dirs.Down
	case Left:
		return dirs.Left
	case Right:
		return dirs.Right
	default:
		return nil
	}
}

// MarshalJSON serializes s in the corpus's terrain_neighbors.json schema.
func (s *Stats) MarshalJSON() ([]byte, error) {
	doc := statsJSON{
		Metadata: metadataJSON{
			AnalysisTool: "golfrom-neighbor",
		},
		Neighbors: make(map[string]directionsJSON, len(s.counts)),
	}

	relationships := 0
	for _, tile := range s.Tiles() {
		byDir := s.counts[tile]
		dirs := directionsJSON{
			Up:    map[string]int{},
			Down:  map[string]int{},
			Left:  map[string]int{},
			Right: map[string]int{},
		}
		for _, d := range Directions {
			out := direction(d, dirs)
			for n, count := range byDir[d] {
				if count <= 0 {
					continue
				}
				out[hexKey(n)] = count
				relationships++
			}
		}
		doc.Neighbors[hexKey(tile)] = dirs
	}

	doc.Metadata.TotalUniqueTiles = len(doc.Neighbors)
	doc.Metadata.TotalRelationships = relationships

	return json.MarshalIndent(doc, "", "  ")
}

// UnmarshalJSON populates s from the corpus's terrain_neighbors.json
// schema. Unlike the original Python loader, it does not also accept the
// legacy array-valued format: that format carries no counts, and every
// consumer of a Stats here (the forest filler's frequency scoring) needs
// counts, so a Stats without them is not useful.
func (s *Stats) UnmarshalJSON(b []byte) error {
	var doc statsJSON
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}

	s.counts = make(map[uint8]map[Direction]map[uint8]int, len(doc.Neighbors))
	for tileKey, dirs := range doc.Neighbors {
		tile, err := parseHexKey(tileKey)
		if err != nil {
			return err
		}
		for _, d := range Directions {
			for nKey, count := range direction(d, dirs) {
				n, err := parseHexKey(nKey)
				if err != nil {
					return err
				}
				s.addCount(tile, d, n, count)
			}
		}
	}

	return nil
}

// Load reads a Stats from a terrain_neighbors.json file on disk.
func Load(path string) (*Stats, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading neighbor stats %q: %w", path, err)
	}
	st := New()
	if err := st.UnmarshalJSON(b); err != nil {
		return nil, fmt.Errorf("parsing neighbor stats %q: %w", path, err)
	}
	return st, nil
}

// Save writes s to path in the corpus's terrain_neighbors.json schema.
func (s *Stats) Save(path string) error {
	b, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing neighbor stats %q: %w", path, err)
	}
	return nil
}
