package levels

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/sim"
	"github.com/vovakirdan/gameone/internal/tilemap"
)

func TestEmbeddedLoadAll(t *testing.T) {
	lvls, err := Embedded().LoadAll()
	if err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}

	if len(lvls) != 2 {
		t.Fatalf("got %d levels, expected 2", len(lvls))
	}
	if lvls[0].ID != "level1" || lvls[1].ID != "level2" {
		t.Errorf("IDs = %s, %s, expected level1, level2", lvls[0].ID, lvls[1].ID)
	}
	for _, lvl := range lvls {
		if len(lvl.Warnings) != 0 {
			t.Errorf("%s has warnings: %v", lvl.ID, lvl.Warnings)
		}
	}
}

func TestEmbeddedLevel1(t *testing.T) {
	lvl, err := Embedded().LoadByID("level1")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}

	if lvl.Name != "Green Meadow" || lvl.Index != 1 {
		t.Errorf("Name/Index = %q/%d", lvl.Name, lvl.Index)
	}
	if lvl.Format != tilemap.Current || lvl.MapFile != "maps/level1.map" {
		t.Errorf("map = %s %s", lvl.Format, lvl.MapFile)
	}
	if lvl.Map.Columns() != 16 || lvl.Map.Rows() != 10 {
		t.Errorf("map size = %dx%d, expected 16x10", lvl.Map.Columns(), lvl.Map.Rows())
	}

	expectedPlayer := sim.Descriptor{Name: "Hero", Kind: sim.KindPlayer, Origin: core.P(1, 1), MaximumEnergy: 5, MaximumLives: 3}
	if lvl.Player != expectedPlayer {
		t.Errorf("Player = %+v, expected %+v", lvl.Player, expectedPlayer)
	}
	if len(lvl.Enemies) != 3 {
		t.Fatalf("got %d enemies, expected 3", len(lvl.Enemies))
	}
	if lvl.Enemies[1].Name != "Slime" || lvl.Enemies[1].MaximumLives != 2 {
		t.Errorf("second enemy = %+v", lvl.Enemies[1])
	}
}

func TestEmbeddedLevel2UsesLegacyMap(t *testing.T) {
	lvl, err := Embedded().LoadByID("level2")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}

	if lvl.Format != tilemap.Legacy {
		t.Errorf("Format = %s, expected legacy", lvl.Format)
	}
	if lvl.Enemies[0].MaximumLives != 1 {
		t.Errorf("default lives = %d, expected 1", lvl.Enemies[0].MaximumLives)
	}
	if lvl.Enemies[1].MaximumLives != 2 {
		t.Errorf("maximumLives = %d, expected 2", lvl.Enemies[1].MaximumLives)
	}
}

func TestLoadBareMapUsesDefaultRoster(t *testing.T) {
	loader := Embedded()
	lvl, err := loader.Load("maps/classic.txt")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	def, err := loader.LoadFile(DefaultLevel)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	if lvl.ID != "classic" || lvl.Format != tilemap.Legacy {
		t.Errorf("ID/Format = %s/%s", lvl.ID, lvl.Format)
	}
	if lvl.Player != def.Player || !reflect.DeepEqual(lvl.Enemies, def.Enemies) {
		t.Error("bare map should reuse the default roster")
	}
	if lvl.Map == def.Map || lvl.Map.IsWalkable(0, 0) {
		t.Error("bare map should replace the default map")
	}
}

func TestLoadUnsupportedAndMissing(t *testing.T) {
	loader := Embedded()

	if _, err := loader.Load("level1.xml"); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Load(.xml) error = %v, expected ErrUnsupportedFormat", err)
	}
	if _, err := loader.LoadByID("level9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadByID(level9) error = %v, expected ErrNotFound", err)
	}
	if _, err := loader.Load("level9.json"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Load(level9.json) error = %v, expected ErrNotFound", err)
	}
}

func TestLevelNewArena(t *testing.T) {
	lvl, err := Embedded().LoadByID("level1")
	if err != nil {
		t.Fatalf("LoadByID() failed: %v", err)
	}

	arena, err := lvl.NewArena(sim.WithSeed(1))
	if err != nil {
		t.Fatalf("NewArena() failed: %v", err)
	}
	if arena.Columns() != 16 || arena.Rows() != 10 {
		t.Errorf("arena size = %dx%d", arena.Columns(), arena.Rows())
	}
	if len(arena.Enemies()) != 3 || arena.Player().Position() != core.P(1, 1) {
		t.Error("arena roster does not match the level")
	}

	// The tree at (7,1) blocks the way along row 1.
	p := arena.Player()
	for range 10 {
		p.MoveRight()
	}
	if p.Position() != core.P(6, 1) {
		t.Errorf("player stopped at %v, expected (6,1) before the tree", p.Position())
	}
}

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, data := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(data)}
	}
	return fsys
}

func TestLoadAllOrderAndSkipping(t *testing.T) {
	player := `"player": {"x": 0, "y": 0, "maximumEnergy": 1}`
	fsys := testFS(map[string]string{
		"level10.json": `{"levelName": "Ten", "map": {"tiles": "GG"}, ` + player + `}`,
		"level2.yaml":  "levelName: Two\nmap:\n  tiles: GG\nplayer:\n  x: 0\n  y: 0\n  maximumEnergy: 1\n",
		"level2.json":  `{"levelName": "Also Two", "map": {"tiles": "GG"}, ` + player + `}`,
		"level3.json":  `{"map": {"tiles": "GG"}}`,
		"levelx.json":  `{"map": {"tiles": "GG"}, ` + player + `}`,
		"bonus.json":   `{"map": {"tiles": "GG"}, ` + player + `}`,
		"level4.txt":   "GG",
		"maps/a.map":   "G G \n--",
		"level1.yml":   "map:\n  filename: maps/a.map\n  format: 2\nplayer:\n  x: 0\n  y: 0\n  maximumEnergy: 2\n",
		"level5.json":  `{"map": {"filename": "maps/none.map"}, ` + player + `}`,
		"level6.json":  `{"map": {"tiles": "GG"}, "player": {"x": 5, "y": 0, "maximumEnergy": 1}}`,
	})

	ids, err := NewLoader(fsys).ListIDs()
	if err != nil {
		t.Fatalf("ListIDs() failed: %v", err)
	}

	expected := []string{"level1", "level2", "level2", "level10"}
	if !reflect.DeepEqual(ids, expected) {
		t.Errorf("ListIDs() = %v, expected %v", ids, expected)
	}

	lvls, _ := NewLoader(fsys).LoadAll()
	if lvls[1].Name != "Also Two" || lvls[2].Name != "Two" {
		t.Errorf("same-index levels not ordered by name: %q, %q", lvls[1].Name, lvls[2].Name)
	}
	if lvls[0].Name != "level1" {
		t.Errorf("unnamed level got Name %q, expected its ID", lvls[0].Name)
	}
}

func TestLoadFileErrors(t *testing.T) {
	fsys := testFS(map[string]string{
		"missing_energy.json": `{"map": {"tiles": "GG"}, "player": {"x": 0, "y": 0}}`,
		"off_map.json":        `{"map": {"tiles": "GG"}, "player": {"x": 0, "y": 0, "maximumEnergy": 1}, "enemies": [{"x": 0, "y": 3, "maximumEnergy": 1}]}`,
		"zero_lives.json":     `{"map": {"tiles": "GG"}, "player": {"x": 0, "y": 0, "maximumEnergy": 1, "maximumLives": 0}}`,
		"bad_tile.json":       `{"map": {"tiles": "GQ"}, "player": {"x": 0, "y": 0, "maximumEnergy": 1}}`,
		"no_map_file.json":    `{"map": {"filename": "nowhere.map"}, "player": {"x": 0, "y": 0, "maximumEnergy": 1}}`,
	})

	tests := []struct {
		file   string
		target error
	}{
		{"missing_energy.json", ErrMissingAttribute},
		{"off_map.json", ErrInvalidLevel},
		{"zero_lives.json", ErrInvalidLevel},
		{"bad_tile.json", tilemap.ErrUnknownTile},
	}

	loader := NewLoader(fsys)
	for _, tc := range tests {
		t.Run(tc.file, func(t *testing.T) {
			_, err := loader.LoadFile(tc.file)
			if !errors.Is(err, tc.target) {
				t.Errorf("LoadFile() error = %v, expected %v", err, tc.target)
			}
		})
	}

	if _, err := loader.LoadFile("no_map_file.json"); err == nil {
		t.Error("LoadFile() with a missing map file should fail")
	}
}

func TestValidateWarnings(t *testing.T) {
	// Row 0: grass with a player marker, a tree, grass with an enemy marker.
	// Row 1: grass, grass with an enemy marker, mountain.
	tiles := "GPG@GE\nG GEM \n--"
	doc := `{"map": {"tiles": "` + strings.ReplaceAll(tiles, "\n", `\n`) + `", "format": 2},
		"player":  {"name": "Hero", "x": 0, "y": 0, "maximumEnergy": 1},
		"enemies": [
			{"name": "Treant", "x": 1, "y": 0, "maximumEnergy": 1},
			{"name": "Drifter", "x": 0, "y": 1, "maximumEnergy": 1},
			{"name": "Goat", "x": 2, "y": 1, "maximumEnergy": 1}
		]}`
	loader := NewLoader(testFS(map[string]string{"level1.json": doc}))

	lvl, err := loader.LoadFile("level1.json")
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}

	expected := []string{
		"no start marker at start position (1,0) of Enemy \"Treant\"",
		"is on Grass+Tree, which is not walkable",
		"no start marker at start position (0,1) of Enemy \"Drifter\"",
		"is on Mountain, which is not walkable",
		"no start marker at start position (2,1) of Enemy \"Goat\"",
		"map marks a Enemy start at (2,0)",
		"map marks a Enemy start at (1,1)",
	}
	if len(lvl.Warnings) != len(expected) {
		t.Fatalf("Warnings = %q, expected %d entries", lvl.Warnings, len(expected))
	}
	for _, want := range expected {
		found := false
		for _, got := range lvl.Warnings {
			if strings.Contains(got, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("no warning containing %q in %q", want, lvl.Warnings)
		}
	}
}
