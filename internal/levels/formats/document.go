// Package formats decodes level documents. JSON level files are read with
// the YAML decoder, which accepts JSON input unchanged.
package formats

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ErrMissingAttribute is returned when a required level attribute is absent.
var ErrMissingAttribute = errors.New("missing attribute")

// Document is the on-disk shape of a level file.
type Document struct {
	LevelName string      `yaml:"levelName"`
	Map       MapSpec     `yaml:"map"`
	Player    *ActorSpec  `yaml:"player"`
	Enemies   []ActorSpec `yaml:"enemies"`
}

// MapSpec points at the level's map, either as a file or inline tiles.
type MapSpec struct {
	Filename string `yaml:"filename"`
	Tiles    string `yaml:"tiles"`
	Format   int    `yaml:"format"`
}

// ActorSpec describes one actor of the roster.
type ActorSpec struct {
	Name          string `yaml:"name"`
	X             *int   `yaml:"x"`
	Y             *int   `yaml:"y"`
	MaximumEnergy *int   `yaml:"maximumEnergy"`
	MaximumLives  *int   `yaml:"maximumLives"`
	MaximumLifes  *int   `yaml:"maximumLifes"` // older spelling
}

// Lives returns the declared maximum lives. maximumLives wins over the older
// spelling; an actor declaring neither gets one life.
func (a ActorSpec) Lives() int {
	switch {
	case a.MaximumLives != nil:
		return *a.MaximumLives
	case a.MaximumLifes != nil:
		return *a.MaximumLifes
	default:
		return 1
	}
}

// Origin returns the declared starting cell.
func (a ActorSpec) Origin() (x, y int) {
	if a.X != nil {
		x = *a.X
	}
	if a.Y != nil {
		y = *a.Y
	}
	return x, y
}

// Energy returns the declared maximum energy.
func (a ActorSpec) Energy() int {
	if a.MaximumEnergy == nil {
		return 0
	}
	return *a.MaximumEnergy
}

// ParseDocument decodes and checks a level document.
func ParseDocument(data []byte) (Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if doc.Map.Filename == "" && doc.Map.Tiles == "" {
		return Document{}, fmt.Errorf("%w: map.filename or map.tiles", ErrMissingAttribute)
	}
	if doc.Map.Format == 0 {
		doc.Map.Format = 1
	}

	if doc.Player == nil {
		return Document{}, fmt.Errorf("%w: player", ErrMissingAttribute)
	}
	if attr := doc.Player.missing(); attr != "" {
		return Document{}, fmt.Errorf("%w: player.%s", ErrMissingAttribute, attr)
	}
	for i, e := range doc.Enemies {
		if attr := e.missing(); attr != "" {
			return Document{}, fmt.Errorf("%w: enemies[%d].%s", ErrMissingAttribute, i, attr)
		}
	}

	return doc, nil
}

// missing names the first required attribute the actor lacks.
func (a ActorSpec) missing() string {
	switch {
	case a.X == nil:
		return "x"
	case a.Y == nil:
		return "y"
	case a.MaximumEnergy == nil:
		return "maximumEnergy"
	default:
		return ""
	}
}

// Extensions returns the level file extensions ParseDocument understands.
func Extensions() []string {
	return []string{".json", ".yaml", ".yml"}
}
