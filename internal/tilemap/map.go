package tilemap

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameone/internal/core"
)

var (
	ErrUnknownTile   = errors.New("tilemap: unknown tile")
	ErrEmptyMap      = errors.New("tilemap: empty map")
	ErrRaggedMap     = errors.New("tilemap: rows differ in length")
	ErrUnknownFormat = errors.New("tilemap: unknown format")
)

// Format selects how cells are encoded in a map file.
type Format int

const (
	// Legacy maps use one terrain code per cell.
	Legacy Format = 1
	// Current maps use two codes per cell, terrain then item, and end with a
	// trailer line that is not part of the grid.
	Current Format = 2
)

func (f Format) String() string {
	switch f {
	case Legacy:
		return "legacy"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

func (f Format) cellWidth() int {
	if f == Current {
		return 2
	}
	return 1
}

var logger = log.New(io.Discard)

// SetLogger sets the logger used for load progress.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Map is a rectangular grid of tiles stored in row-major order.
type Map struct {
	columns int
	rows    int
	tiles   []Tile
}

// StartMarker is a start position marked in the map itself.
type StartMarker struct {
	Position core.Point
	Kind     string
}

// Parse decodes map data. Surrounding whitespace is ignored, as is
// whitespace around each row.
func Parse(data []byte, format Format) (*Map, error) {
	if format != Legacy && format != Current {
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrEmptyMap
	}

	lines := bytes.Split(data, []byte("\n"))
	if format == Current {
		lines = lines[:len(lines)-1]
	}

	m := &Map{}
	width := format.cellWidth()
	for y, line := range lines {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			return nil, fmt.Errorf("%w: row %d is blank", ErrRaggedMap, y)
		}

		columns := 0
		for i := 0; i < len(line); i += width {
			item := byte(' ')
			if width == 2 && i+1 < len(line) {
				item = line[i+1]
			}
			tile, ok := parseTile(line[i], item)
			if !ok {
				return nil, fmt.Errorf("%w: %q at (%d,%d)", ErrUnknownTile, line[i], columns, y)
			}
			m.tiles = append(m.tiles, tile)
			columns++
		}

		if y == 0 {
			m.columns = columns
		} else if columns != m.columns {
			return nil, fmt.Errorf("%w: row %d has %d cells, expected %d", ErrRaggedMap, y, columns, m.columns)
		}
		m.rows++
	}

	if m.rows == 0 || m.columns == 0 {
		return nil, ErrEmptyMap
	}
	return m, nil
}

// Load reads and parses a map file from fsys.
func Load(fsys fs.FS, name string, format Format) (*Map, error) {
	logger.Info("loading map", "file", name, "format", format)

	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("tilemap: reading %s: %w", name, err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("map loaded", "file", name, "columns", m.columns, "rows", m.rows)
	return m, nil
}

// Columns returns the map width.
func (m *Map) Columns() int {
	return m.columns
}

// Rows returns the map height.
func (m *Map) Rows() int {
	return m.rows
}

// Bounds returns the grid size.
func (m *Map) Bounds() (columns, rows int) {
	return m.columns, m.rows
}

// InBounds reports whether (x, y) lies on the map.
func (m *Map) InBounds(x, y int) bool {
	return x >= 0 && x < m.columns && y >= 0 && y < m.rows
}

// Tile returns the tile at (x, y), or the zero Tile off the map.
func (m *Map) Tile(x, y int) Tile {
	if !m.InBounds(x, y) {
		return Tile{}
	}
	return m.tiles[y*m.columns+x]
}

// IsWalkable reports whether an actor may stand on (x, y). Cells off the map
// are never walkable.
func (m *Map) IsWalkable(x, y int) bool {
	return m.Tile(x, y).Walkable()
}

// Starts returns the start markers in row-major order.
func (m *Map) Starts() []StartMarker {
	var starts []StartMarker
	for i, t := range m.tiles {
		if t.Start != "" {
			starts = append(starts, StartMarker{
				Position: core.P(i%m.columns, i/m.columns),
				Kind:     t.Start,
			})
		}
	}
	return starts
}
