// Package tilemap parses grid maps made of terrain and item codes and answers
// walkability questions for the simulation.
package tilemap

// TileType is one entry of the tile table. The zero value means "no type"
// and is what unknown item codes resolve to.
type TileType struct {
	Code     byte
	Name     string
	Walkable bool
}

// Valid reports whether the type came from the tile table.
func (t TileType) Valid() bool {
	return t.Name != ""
}

// Tile table. Terrain and items share one code space.
var types = map[byte]TileType{
	'G':  {'G', "Grass", true},
	'W':  {'W', "DeepWater", false},
	'w':  {'w', "Water", true},
	'H':  {'H', "Hill", true},
	'M':  {'M', "Mountain", false},
	'S':  {'S', "Sand", true},
	'I':  {'I', "Ice", true},
	'L':  {'L', "Lava", true},
	'@':  {'@', "Tree", false},
	'#':  {'#', "Fence", false},
	'-':  {'-', "Fence", false},
	'|':  {'|', "Fence", false},
	'/':  {'/', "Fence", false},
	'\\': {'\\', "Fence", false},
}

// shortcuts expand a single terrain code into terrain plus item.
var shortcuts = map[byte][2]byte{
	'T': {'G', '@'},
	'F': {'G', '#'},
}

// Start markers in the item slot. They name the actor kind expected to start
// on the cell and do not affect walkability.
var starts = map[byte]string{
	'P': "Player",
	'E': "Enemy",
}

// Lookup returns the tile table entry for a code.
func Lookup(code byte) (TileType, bool) {
	t, ok := types[code]
	return t, ok
}

// Tile is one map cell.
type Tile struct {
	Terrain TileType
	Item    TileType
	// Start is the actor kind marked on this cell, or "".
	Start string
}

// Walkable reports whether an actor may stand on the tile. A blocking item
// overrides the terrain; otherwise the terrain decides.
func (t Tile) Walkable() bool {
	if t.Item.Valid() && !t.Item.Walkable {
		return false
	}
	return t.Terrain.Walkable
}

// parseTile decodes a terrain code and an optional item code. ok is false
// when the terrain code is not in the table.
func parseTile(terrain, item byte) (Tile, bool) {
	if s, found := shortcuts[terrain]; found {
		terrain, item = s[0], s[1]
	}

	tt, ok := types[terrain]
	if !ok {
		return Tile{}, false
	}

	return Tile{
		Terrain: tt,
		Item:    types[item],
		Start:   starts[item],
	}, true
}
