package formats

import (
	"errors"
	"strings"
	"testing"
)

func TestParseDocumentJSON(t *testing.T) {
	data := []byte(`{
		"levelName": "Meadow",
		"map": {"filename": "maps/meadow.map", "format": 2},
		"player": {"name": "Hero", "x": 1, "y": 2, "maximumEnergy": 5, "maximumLives": 3},
		"enemies": [
			{"name": "Blob", "x": 4, "y": 4, "maximumEnergy": 2, "maximumLifes": 2},
			{"name": "Bat", "x": 5, "y": 1, "maximumEnergy": 1}
		]
	}`)

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}

	if doc.LevelName != "Meadow" || doc.Map.Filename != "maps/meadow.map" || doc.Map.Format != 2 {
		t.Errorf("header = %q %q %d", doc.LevelName, doc.Map.Filename, doc.Map.Format)
	}
	if x, y := doc.Player.Origin(); doc.Player.Name != "Hero" || x != 1 || y != 2 {
		t.Errorf("player = %+v", doc.Player)
	}
	if doc.Player.Energy() != 5 || doc.Player.Lives() != 3 {
		t.Errorf("player maxima = %d/%d, expected 5/3", doc.Player.Energy(), doc.Player.Lives())
	}
	if len(doc.Enemies) != 2 {
		t.Fatalf("got %d enemies, expected 2", len(doc.Enemies))
	}
	if doc.Enemies[0].Lives() != 2 {
		t.Errorf("maximumLifes alias gave %d lives, expected 2", doc.Enemies[0].Lives())
	}
	if doc.Enemies[1].Lives() != 1 {
		t.Errorf("default lives = %d, expected 1", doc.Enemies[1].Lives())
	}
}

func TestParseDocumentYAML(t *testing.T) {
	data := []byte(`
levelName: Dunes
map:
  tiles: |
    SSS
    SWS
player:
  x: 0
  y: 0
  maximumEnergy: 4
  maximumLives: 2
  maximumLifes: 9
`)

	doc, err := ParseDocument(data)
	if err != nil {
		t.Fatalf("ParseDocument() failed: %v", err)
	}
	if doc.Map.Format != 1 {
		t.Errorf("default format = %d, expected 1", doc.Map.Format)
	}
	if doc.Map.Tiles == "" {
		t.Error("inline tiles were not decoded")
	}
	if doc.Player.Lives() != 2 {
		t.Errorf("Lives() = %d, expected maximumLives to win", doc.Player.Lives())
	}
	if len(doc.Enemies) != 0 {
		t.Errorf("got %d enemies, expected none", len(doc.Enemies))
	}
}

func TestParseDocumentMissingAttributes(t *testing.T) {
	tests := []struct {
		name string
		data string
		attr string
	}{
		{"no map", `{"player": {"x": 0, "y": 0, "maximumEnergy": 1}}`, "map.filename or map.tiles"},
		{"no player", `{"map": {"filename": "a.map"}}`, "player"},
		{"player without energy", `{"map": {"filename": "a.map"}, "player": {"x": 0, "y": 0}}`, "player.maximumEnergy"},
		{"player without x", `{"map": {"filename": "a.map"}, "player": {"y": 0, "maximumEnergy": 1}}`, "player.x"},
		{"player without y", `{"map": {"filename": "a.map"}, "player": {"x": 0, "maximumEnergy": 1}}`, "player.y"},
		{"enemy without energy", `{"map": {"filename": "a.map"}, "player": {"x": 0, "y": 0, "maximumEnergy": 1}, "enemies": [{"x": 1, "y": 1}]}`, "enemies[0].maximumEnergy"},
		{"enemy without y", `{"map": {"filename": "a.map"}, "player": {"x": 0, "y": 0, "maximumEnergy": 1}, "enemies": [{"x": 1, "y": 1, "maximumEnergy": 1}, {"x": 2, "maximumEnergy": 1}]}`, "enemies[1].y"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tc.data))
			if !errors.Is(err, ErrMissingAttribute) {
				t.Fatalf("ParseDocument() error = %v, expected ErrMissingAttribute", err)
			}
			if !strings.HasSuffix(err.Error(), ": "+tc.attr) {
				t.Errorf("ParseDocument() error = %q, expected it to name %q", err, tc.attr)
			}
		})
	}
}

func TestParseDocumentSyntaxError(t *testing.T) {
	if _, err := ParseDocument([]byte(`{"map": [}`)); err == nil {
		t.Error("ParseDocument() accepted malformed input")
	}
}
