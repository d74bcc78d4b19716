package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// MapDocument is the YAML description of a grid
type MapDocument struct {
	Name      string   `yaml:"name"`
	Height    int      `yaml:"height"`
	Width     int      `yaml:"width"`
	Rows      []string `yaml:"rows"`
	Blocks    []Block  `yaml:"blocks"`
	Obstacles string   `yaml:"obstacles"` // GeoJSON file, relative to the document
}

// Block is a rectangle of obstacle cells
type Block struct {
	Row    int `yaml:"row"`
	Col    int `yaml:"col"`
	Height int `yaml:"height"`
	Width  int `yaml:"width"`
}

// classic demonstration map, 15 rows by 20 columns
var defaultRows = []string{
	"00000100010000000011",
	"00110000000100000001",
	"00000010000001100001",
	"00000101000000000000",
	"00000000001000000101",
	"00000000100000000000",
	"00000000001000000000",
	"00000100000000000000",
	"00010000011000000000",
	"00000010000000000000",
	"01100000000100000000",
	"00001001000010000000",
	"00000000000000000110",
	"01000010000001010001",
	"00001000000000100000",
}

// DefaultTerrain returns the built-in 15x20 map
func DefaultTerrain() [][]Terrain {
	terrain, err := parseRows(defaultRows, 1)
	if err != nil {
		panic(err)
	}
	return terrain
}

// LoadMap reads a grid from a text map or, for .yaml/.yml files, a
// MapDocument. An empty path yields the default map.
func LoadMap(path string) (*Grid, error) {
	if path == "" {
		return BuildGrid(DefaultTerrain())
	}

	log.Printf("📂 Loading map from %s...", path)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map: %w", err)
	}

	var terrain [][]Terrain
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		terrain, err = ParseMapDocument(data, filepath.Dir(path))
	default:
		terrain, err = ParseTextMap(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse map %s: %w", path, err)
	}

	g, err := BuildGrid(terrain)
	if err != nil {
		return nil, err
	}
	log.Printf("   ✅ Map loaded: %dx%d, %d obstacles", g.Height(), g.Width(), g.ObstacleCount())
	return g, nil
}

// ParseTextMap reads one grid row per line. Blank lines and lines starting
// with ';' are skipped.
func ParseTextMap(r io.Reader) ([][]Terrain, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)

	var terrain [][]Terrain
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		row, err := parseRow(line, lineNo)
		if err != nil {
			return nil, err
		}
		if len(terrain) > 0 && len(row) != len(terrain[0]) {
			return nil, &MapError{Line: lineNo, Reason: fmt.Sprintf("row has %d cells, expected %d", len(row), len(terrain[0]))}
		}
		terrain = append(terrain, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(terrain) == 0 {
		return nil, &MapError{Reason: "map has no rows"}
	}
	return terrain, nil
}

// ParseMapDocument builds the terrain described by a YAML (or JSON) document.
// baseDir resolves a relative obstacles file. An empty baseDir means the
// document has no home on disk, so an obstacles reference is rejected rather
// than read.
func ParseMapDocument(data []byte, baseDir string) ([][]Terrain, error) {
	var doc MapDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &MapError{Reason: err.Error()}
	}

	var terrain [][]Terrain
	if len(doc.Rows) > 0 {
		rows, err := parseRows(doc.Rows, 1)
		if err != nil {
			return nil, err
		}
		if (doc.Height != 0 && doc.Height != len(rows)) || (doc.Width != 0 && doc.Width != len(rows[0])) {
			return nil, &MapError{Reason: fmt.Sprintf("rows are %dx%d but document declares %dx%d",
				len(rows), len(rows[0]), doc.Height, doc.Width)}
		}
		terrain = rows
	} else {
		if doc.Height <= 0 || doc.Width <= 0 {
			return nil, &MapError{Reason: "height and width are required without rows"}
		}
		terrain = make([][]Terrain, doc.Height)
		for r := range terrain {
			terrain[r] = make([]Terrain, doc.Width)
		}
	}

	for i, b := range doc.Blocks {
		if err := fillBlock(terrain, b); err != nil {
			return nil, fmt.Errorf("block %d: %w", i, err)
		}
	}

	if doc.Obstacles != "" {
		if baseDir == "" {
			return nil, &MapError{Reason: "obstacles file is only allowed in maps loaded from disk"}
		}
		path := doc.Obstacles
		if !filepath.IsAbs(path) {
			path = filepath.Join(baseDir, path)
		}
		zones, err := LoadObstacleZones(path)
		if err != nil {
			return nil, err
		}
		RasterizeZones(terrain, zones)
	}

	return terrain, nil
}

func fillBlock(terrain [][]Terrain, b Block) error {
	height, width := len(terrain), len(terrain[0])
	if b.Height <= 0 || b.Width <= 0 || b.Row < 0 || b.Col < 0 ||
		b.Row+b.Height > height || b.Col+b.Width > width {
		return &MapError{Reason: fmt.Sprintf("block at (%d, %d) size %dx%d does not fit %dx%d grid",
			b.Row, b.Col, b.Height, b.Width, height, width)}
	}
	for r := b.Row; r < b.Row+b.Height; r++ {
		for c := b.Col; c < b.Col+b.Width; c++ {
			terrain[r][c] = Obstacle
		}
	}
	return nil
}

func parseRows(rows []string, firstLine int) ([][]Terrain, error) {
	terrain := make([][]Terrain, 0, len(rows))
	for i, line := range rows {
		row, err := parseRow(line, firstLine+i)
		if err != nil {
			return nil, err
		}
		if len(terrain) > 0 && len(row) != len(terrain[0]) {
			return nil, &MapError{Line: firstLine + i, Reason: fmt.Sprintf("row has %d cells, expected %d", len(row), len(terrain[0]))}
		}
		terrain = append(terrain, row)
	}
	if len(terrain) == 0 || len(terrain[0]) == 0 {
		return nil, &MapError{Reason: "map has no cells"}
	}
	return terrain, nil
}

func parseRow(line string, lineNo int) ([]Terrain, error) {
	row := make([]Terrain, 0, len(line))
	for _, ch := range line {
		switch ch {
		case '0', '.', '□':
			row = append(row, Passable)
		case '1', '#', '▓':
			row = append(row, Obstacle)
		default:
			return nil, &MapError{Line: lineNo, Reason: fmt.Sprintf("unknown cell %q", ch)}
		}
	}
	return row, nil
}

// FormatRows encodes the grid as '0'/'1' strings, one per row
func FormatRows(g *Grid) []string {
	rows := make([]string, g.Height())
	var sb strings.Builder
	for r := 0; r < g.Height(); r++ {
		sb.Reset()
		for c := 0; c < g.Width(); c++ {
			if g.Passable(Cell{Row: r, Col: c}) {
				sb.WriteByte('0')
			} else {
				sb.WriteByte('1')
			}
		}
		rows[r] = sb.String()
	}
	return rows
}
