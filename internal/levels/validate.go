package levels

import (
	"fmt"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/sim"
)

// validate checks the roster against the map. Impossible rosters fail the
// load; mismatches with the map's own start markers are only warnings.
func (l *Loader) validate(level *Level) error {
	actors := append([]sim.Descriptor{level.Player}, level.Enemies...)
	markers := level.Map.Starts()

	for _, a := range actors {
		if a.MaximumEnergy < 1 || a.MaximumLives < 1 {
			return fmt.Errorf("%w: %s: %s %q needs positive maximumEnergy and maximumLives, got %d/%d",
				ErrInvalidLevel, level.FilePath, a.Kind, a.Name, a.MaximumEnergy, a.MaximumLives)
		}
		if !level.Map.InBounds(a.Origin.X, a.Origin.Y) {
			return fmt.Errorf("%w: %s: start position %v of %s %q is outside the %dx%d map",
				ErrInvalidLevel, level.FilePath, a.Origin, a.Kind, a.Name, level.Map.Columns(), level.Map.Rows())
		}
	}

	started := make(map[core.Point]sim.Kind, len(actors))
	for _, a := range actors {
		started[a.Origin] = a.Kind
		tile := level.Map.Tile(a.Origin.X, a.Origin.Y)

		if !tile.Walkable() {
			l.warn(level, fmt.Sprintf("start position %v of %s %q is on %s, which is not walkable",
				a.Origin, a.Kind, a.Name, tileName(tile.Terrain.Name, tile.Item.Name)))
		}
		if len(markers) == 0 {
			continue
		}
		switch {
		case tile.Start == "":
			l.warn(level, fmt.Sprintf("no start marker at start position %v of %s %q", a.Origin, a.Kind, a.Name))
		case tile.Start != a.Kind.String():
			l.warn(level, fmt.Sprintf("unexpected %s marker at start position %v of %s %q", tile.Start, a.Origin, a.Kind, a.Name))
		}
	}

	for _, m := range markers {
		if kind, ok := started[m.Position]; !ok || kind.String() != m.Kind {
			l.warn(level, fmt.Sprintf("map marks a %s start at %v, but the level does not declare it", m.Kind, m.Position))
		}
	}

	return nil
}

func (l *Loader) warn(level *Level, msg string) {
	level.Warnings = append(level.Warnings, msg)
	l.logger.Warn(msg, "level", level.FilePath)
}

func tileName(terrain, item string) string {
	if item == "" {
		return terrain
	}
	return terrain + "+" + item
}
