package sim

import (
	"testing"

	"github.com/vovakirdan/gameone/internal/core"
)

func TestActPursuesOnRolledAxis(t *testing.T) {
	tests := []struct {
		name     string
		player   core.Point
		roll     int
		expected core.Point
	}{
		{"left toward player", core.P(1, 1), actLeft, core.P(2, 3)},
		{"up toward player", core.P(1, 1), actUp, core.P(3, 2)},
		{"right away from player", core.P(1, 1), actRight, core.P(3, 3)},
		{"down away from player", core.P(1, 1), actDown, core.P(3, 3)},
		{"wait", core.P(1, 1), actWait, core.P(3, 3)},
		{"right toward player", core.P(5, 5), actRight, core.P(4, 3)},
		{"down toward player", core.P(5, 5), actDown, core.P(3, 4)},
		{"left away from player", core.P(5, 5), actLeft, core.P(3, 3)},
		{"same column", core.P(3, 0), actLeft, core.P(3, 3)},
		{"same row", core.P(0, 3), actUp, core.P(3, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dice := &seqDice{vals: []int{tc.roll}}
			arena := newTestArena(t, NewOpenField(7, 7), dice,
				playerDesc(tc.player.X, tc.player.Y, 5, 1),
				[]Descriptor{enemyDesc("e", 3, 3, 3, 1)})
			e := arena.Enemies()[0]

			arena.Act(e)

			if e.Position() != tc.expected {
				t.Errorf("enemy at %v, expected %v", e.Position(), tc.expected)
			}
			if len(dice.calls) != 1 || dice.calls[0] != actOutcomes {
				t.Errorf("dice calls = %v, expected one Intn(%d)", dice.calls, actOutcomes)
			}
		})
	}
}

func TestTickSeesEarlierMoves(t *testing.T) {
	tests := []struct {
		name      string
		first     core.Point
		second    core.Point
		expectedA core.Point
		expectedB core.Point
	}{
		// a vacates (2,0) before b moves, so b follows.
		{"leader first", core.P(2, 0), core.P(3, 0), core.P(1, 0), core.P(2, 0)},
		// a is blocked by b, which then moves on.
		{"follower first", core.P(3, 0), core.P(2, 0), core.P(3, 0), core.P(1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dice := &seqDice{vals: []int{actLeft, actLeft}}
			arena := newTestArena(t, NewOpenField(5, 1), dice,
				playerDesc(0, 0, 5, 1),
				[]Descriptor{
					enemyDesc("a", tc.first.X, tc.first.Y, 3, 1),
					enemyDesc("b", tc.second.X, tc.second.Y, 3, 1),
				})

			arena.Tick()

			a, b := arena.Enemies()[0], arena.Enemies()[1]
			if a.Position() != tc.expectedA || b.Position() != tc.expectedB {
				t.Errorf("a=%v b=%v, expected a=%v b=%v", a.Position(), b.Position(), tc.expectedA, tc.expectedB)
			}
		})
	}
}

func TestEnemyAttacksPlayerOnTick(t *testing.T) {
	dice := &seqDice{vals: []int{actLeft, 1}}
	arena := newTestArena(t, NewOpenField(5, 5), dice,
		playerDesc(1, 1, 5, 1),
		[]Descriptor{enemyDesc("e", 2, 1, 4, 1)})
	p, e := arena.Player(), arena.Enemies()[0]
	e.StealEnergy(2)

	arena.Tick()

	if p.Energy() != 4 {
		t.Errorf("player Energy() = %d, expected 4", p.Energy())
	}
	if e.Energy() != 3 {
		t.Errorf("enemy Energy() = %d, expected 3 after reward", e.Energy())
	}
	if e.Position() != core.P(2, 1) || p.Position() != core.P(1, 1) {
		t.Errorf("positions changed: player %v enemy %v", p.Position(), e.Position())
	}
}

func TestDeadEnemyDoesNotMove(t *testing.T) {
	dice := &seqDice{vals: []int{actLeft}}
	arena := newTestArena(t, NewOpenField(5, 5), dice,
		playerDesc(0, 0, 5, 1),
		[]Descriptor{enemyDesc("e", 3, 0, 1, 2)})
	e := arena.Enemies()[0]
	e.StealEnergy(1)

	arena.Tick()

	if e.Position() != core.P(3, 0) {
		t.Errorf("dead enemy moved to %v", e.Position())
	}
}

func TestTickWithoutPlayer(t *testing.T) {
	arena, err := NewArena(NewOpenField(3, 3))
	if err != nil {
		t.Fatalf("NewArena() failed: %v", err)
	}
	arena.Tick()
}
