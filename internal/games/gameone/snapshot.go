package gameone

// Snapshot contains the round state for determinism checks.
// Uses primitive types only for stable comparison.
type Snapshot struct {
	Frames     uint64
	EnemyTicks uint64
	Ticking    bool
	IntervalMS int64

	Score    int
	Paused   bool
	GameOver bool
	Won      bool

	PlayerX      int
	PlayerY      int
	PlayerEnergy int
	PlayerLives  int

	// Each enemy is 4 ints: X, Y, Energy, Lives
	EnemyCount int
	EnemyData  []int
}

// Snapshot returns the current round state.
func (g *Game) Snapshot() Snapshot {
	enemies := g.arena.Enemies()
	data := make([]int, 0, len(enemies)*4)
	for _, e := range enemies {
		data = append(data, e.X(), e.Y(), e.Energy(), e.Lives())
	}

	p := g.arena.Player()
	driver := g.arena.Driver()
	return Snapshot{
		Frames:     g.frames,
		EnemyTicks: driver.Ticks(),
		Ticking:    driver.Running(),
		IntervalMS: driver.Interval().Milliseconds(),

		Score:    g.score,
		Paused:   g.paused,
		GameOver: g.gameOver,
		Won:      g.won,

		PlayerX:      p.X(),
		PlayerY:      p.Y(),
		PlayerEnergy: p.Energy(),
		PlayerLives:  p.Lives(),

		EnemyCount: len(enemies),
		EnemyData:  data,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frames
	h = h*31 + snap.EnemyTicks
	h = h*31 + boolBit(snap.Ticking)
	h = h*31 + uint64(snap.IntervalMS) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)      //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Paused)
	h = h*31 + boolBit(snap.GameOver)
	h = h*31 + boolBit(snap.Won)
	h = h*31 + uint64(snap.PlayerX)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerY)      //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerEnergy) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PlayerLives)  //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.EnemyCount)   //#nosec G115 -- hash computation

	for _, v := range snap.EnemyData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
