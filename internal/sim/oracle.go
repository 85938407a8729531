package sim

// MapOracle answers terrain questions for the arena. Implementations are
// read-only after load and may be shared between arenas.
type MapOracle interface {
	// IsWalkable reports whether an actor may stand on (x, y).
	// Callers only ask about in-bounds cells.
	IsWalkable(x, y int) bool

	// Bounds returns the grid size.
	Bounds() (columns, rows int)
}

// OpenField is a map without obstacles.
type OpenField struct {
	Columns int
	Rows    int
}

// NewOpenField returns an obstacle-free map of the given size.
func NewOpenField(columns, rows int) OpenField {
	return OpenField{Columns: columns, Rows: rows}
}

func (f OpenField) IsWalkable(x, y int) bool {
	return true
}

func (f OpenField) Bounds() (int, int) {
	return f.Columns, f.Rows
}
