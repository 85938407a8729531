package tilemap

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/sim"
)

var _ sim.MapOracle = (*Map)(nil)

func TestTileWalkability(t *testing.T) {
	tests := []struct {
		terrain, item byte
		expected      bool
	}{
		{'G', ' ', true},
		{'W', ' ', false},
		{'w', ' ', true},
		{'H', ' ', true},
		{'M', ' ', false},
		{'S', ' ', true},
		{'I', ' ', true},
		{'L', ' ', true},
		{'G', '@', false},
		{'S', '#', false},
		{'G', '-', false},
		{'G', '|', false},
		{'G', '/', false},
		{'G', '\\', false},
		{'T', ' ', false},
		{'F', ' ', false},
		// A walkable item never rescues blocking terrain.
		{'M', 'G', false},
		// Unknown items are ignored.
		{'G', 'x', true},
		{'W', 'x', false},
		// Start markers do not block.
		{'G', 'P', true},
		{'H', 'E', true},
	}

	for _, tc := range tests {
		t.Run(string([]byte{tc.terrain, tc.item}), func(t *testing.T) {
			tile, ok := parseTile(tc.terrain, tc.item)
			if !ok {
				t.Fatalf("parseTile(%q, %q) rejected", tc.terrain, tc.item)
			}
			if tile.Walkable() != tc.expected {
				t.Errorf("Walkable() = %v, expected %v", tile.Walkable(), tc.expected)
			}
		})
	}
}

func TestShortcutsExpand(t *testing.T) {
	tree, _ := parseTile('T', 'x')
	if tree.Terrain.Name != "Grass" || tree.Item.Name != "Tree" {
		t.Errorf("T = %s+%s, expected Grass+Tree", tree.Terrain.Name, tree.Item.Name)
	}
	fence, _ := parseTile('F', ' ')
	if fence.Terrain.Name != "Grass" || fence.Item.Name != "Fence" {
		t.Errorf("F = %s+%s, expected Grass+Fence", fence.Terrain.Name, fence.Item.Name)
	}
}

func TestParseLegacy(t *testing.T) {
	data := []byte("\n  GGWG  \r\nGMTG\nSSSS\n\n")

	m, err := Parse(data, Legacy)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if m.Columns() != 4 || m.Rows() != 3 {
		t.Fatalf("size = %dx%d, expected 4x3", m.Columns(), m.Rows())
	}
	walkable := []string{
		"##.#",
		"#..#",
		"####",
	}
	for y, row := range walkable {
		for x, c := range row {
			if m.IsWalkable(x, y) != (c == '#') {
				t.Errorf("IsWalkable(%d,%d) = %v", x, y, m.IsWalkable(x, y))
			}
		}
	}
	if got := m.Tile(2, 1); got.Terrain.Name != "Grass" || got.Item.Name != "Tree" {
		t.Errorf("Tile(2,1) = %+v, expected grass with a tree", got)
	}
}

func TestParseCurrent(t *testing.T) {
	data := []byte("G@GPG \nwEM S \nend of map\n")

	m, err := Parse(data, Current)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	if m.Columns() != 3 || m.Rows() != 2 {
		t.Fatalf("size = %dx%d, expected 3x2 (trailer dropped)", m.Columns(), m.Rows())
	}
	// Both rows end in a blank item that trimming cuts off.
	expected := [][]bool{
		{false, true, true},
		{true, false, true},
	}
	for y, row := range expected {
		for x, w := range row {
			if m.IsWalkable(x, y) != w {
				t.Errorf("IsWalkable(%d,%d) = %v, expected %v", x, y, !w, w)
			}
		}
	}

	starts := m.Starts()
	if len(starts) != 2 {
		t.Fatalf("Starts() = %v, expected 2 markers", starts)
	}
	if starts[0].Position != core.P(1, 0) || starts[0].Kind != "Player" {
		t.Errorf("first start = %+v, expected Player at (1,0)", starts[0])
	}
	if starts[1].Position != core.P(0, 1) || starts[1].Kind != "Enemy" {
		t.Errorf("second start = %+v, expected Enemy at (0,1)", starts[1])
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
		target error
	}{
		{"empty", "", Legacy, ErrEmptyMap},
		{"whitespace only", " \n\t\n", Legacy, ErrEmptyMap},
		{"current trailer only", "trailer\n", Current, ErrEmptyMap},
		{"unknown terrain", "GGG\nGXG\n", Legacy, ErrUnknownTile},
		{"unknown terrain current", "G G \nQ G \n--\n", Current, ErrUnknownTile},
		{"ragged", "GGG\nGG\n", Legacy, ErrRaggedMap},
		{"blank row", "GGG\n\nGGG\n", Legacy, ErrRaggedMap},
		{"bad format", "GGG", Format(7), ErrUnknownFormat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.data), tc.format)
			if !errors.Is(err, tc.target) {
				t.Errorf("Parse() error = %v, expected %v", err, tc.target)
			}
		})
	}
}

func TestOffMapTile(t *testing.T) {
	m, err := Parse([]byte("GG\nGG"), Legacy)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}

	for _, p := range []core.Point{core.P(-1, 0), core.P(2, 0), core.P(0, 2), core.P(0, -1)} {
		if m.IsWalkable(p.X, p.Y) {
			t.Errorf("IsWalkable%v = true off the map", p)
		}
		if m.Tile(p.X, p.Y).Terrain.Valid() {
			t.Errorf("Tile%v returned a real tile", p)
		}
	}
}

func TestLoad(t *testing.T) {
	fsys := fstest.MapFS{
		"maps/small.txt": {Data: []byte("GGG\nGWG\nGGG\n")},
	}

	m, err := Load(fsys, "maps/small.txt", Legacy)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cols, rows := m.Bounds(); cols != 3 || rows != 3 {
		t.Errorf("Bounds() = %dx%d, expected 3x3", cols, rows)
	}
	if m.IsWalkable(1, 1) {
		t.Error("deep water should block")
	}

	if _, err := Load(fsys, "maps/missing.txt", Legacy); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() missing file error = %v, expected fs.ErrNotExist", err)
	}
}

func TestFormatString(t *testing.T) {
	if Legacy.String() != "legacy" || Current.String() != "current" || Format(9).String() != "format(9)" {
		t.Errorf("unexpected format names: %s %s %s", Legacy, Current, Format(9))
	}
}
