package sim

import (
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/gameone/internal/core"
)

func TestTickDriverAdvance(t *testing.T) {
	ticks := 0
	d := NewTickDriver(100*time.Millisecond, func() { ticks++ })

	if fired := d.Advance(time.Second); fired != 0 || ticks != 0 {
		t.Fatalf("idle driver fired %d ticks", fired)
	}

	d.Start()
	tests := []struct {
		dt       time.Duration
		expected int
	}{
		{250 * time.Millisecond, 2},
		{40 * time.Millisecond, 0},
		{10 * time.Millisecond, 1},
		{0, 0},
		{-time.Second, 0},
		{300 * time.Millisecond, 3},
	}
	for i, tc := range tests {
		if fired := d.Advance(tc.dt); fired != tc.expected {
			t.Errorf("step %d: Advance(%v) = %d, expected %d", i, tc.dt, fired, tc.expected)
		}
	}
	if ticks != 6 || d.Ticks() != 6 {
		t.Errorf("ticks = %d (driver %d), expected 6", ticks, d.Ticks())
	}
}

func TestTickDriverStartKeepsPhase(t *testing.T) {
	d := NewTickDriver(100*time.Millisecond, nil)
	d.Start()
	d.Advance(60 * time.Millisecond)
	d.Start()

	if fired := d.Advance(40 * time.Millisecond); fired != 1 {
		t.Errorf("Advance() = %d after a repeated Start, expected 1", fired)
	}
}

func TestTickDriverSetInterval(t *testing.T) {
	d := NewTickDriver(100*time.Millisecond, nil)
	d.Start()
	d.Advance(30 * time.Millisecond)

	d.SetInterval(50 * time.Millisecond)
	d.SetInterval(0)

	if d.Interval() != 50*time.Millisecond {
		t.Errorf("Interval() = %v, expected 50ms", d.Interval())
	}
	if fired := d.Advance(20 * time.Millisecond); fired != 1 {
		t.Errorf("Advance() = %d, expected 1 with the shorter interval", fired)
	}
}

func TestTickDriverStopDropsPartialInterval(t *testing.T) {
	d := NewTickDriver(100*time.Millisecond, nil)
	d.Start()
	d.Advance(90 * time.Millisecond)
	d.Stop()
	d.Start()

	if fired := d.Advance(20 * time.Millisecond); fired != 0 {
		t.Errorf("Advance() = %d, expected the interval to restart", fired)
	}
}

func TestTickDriverNotifiesTransitionsOnly(t *testing.T) {
	d := NewTickDriver(time.Millisecond, nil)
	var states []DriverState
	d.onState = func(s DriverState) { states = append(states, s) }

	d.Stop()
	d.Start()
	d.Start()
	d.Stop()
	d.Stop()

	expected := []DriverState{DriverTicking, DriverIdle}
	if !reflect.DeepEqual(states, expected) {
		t.Errorf("states = %v, expected %v", states, expected)
	}
}

func TestDriverStartsOnPlayerMove(t *testing.T) {
	arena := newTestArena(t, NewOpenField(5, 5), &seqDice{}, playerDesc(4, 2, 5, 2), nil)

	if arena.Driver().State() != DriverIdle {
		t.Fatalf("fresh arena driver = %v, expected idle", arena.Driver().State())
	}
	if fired := arena.Advance(time.Second); fired != 0 {
		t.Errorf("enemies ticked %d times before the player moved", fired)
	}

	arena.Player().StealEnergy(1)
	if arena.Driver().Running() {
		t.Error("energy change must not start the driver")
	}
	// Denied moves emit nothing.
	for range 3 {
		arena.Player().MoveRight()
	}
	if arena.Driver().Running() {
		t.Error("denied move must not start the driver")
	}

	arena.Player().MoveUp()
	if !arena.Driver().Running() {
		t.Error("player move should start the driver")
	}
}

func TestDriverStopsOnAnyLivesEvent(t *testing.T) {
	tests := []struct {
		name    string
		action  func(*Arena)
		running bool
	}{
		{"player dies", func(a *Arena) { a.Player().Die() }, false},
		{"player drained", func(a *Arena) { a.Player().StealEnergy(100) }, false},
		// The lives event comes after the position event, so the driver
		// ends up stopped.
		{"actor respawn", func(a *Arena) { a.Player().Respawn() }, false},
		{"arena respawn", func(a *Arena) { a.Respawn() }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			arena := newTestArena(t, NewOpenField(5, 5), &seqDice{}, playerDesc(2, 2, 5, 3), nil)
			arena.Player().MoveLeft()
			if !arena.Driver().Running() {
				t.Fatal("setup: driver should be running")
			}

			tc.action(arena)

			if arena.Driver().Running() != tc.running {
				t.Errorf("Running() = %v, expected %v", !tc.running, tc.running)
			}
		})
	}
}

func TestDriverStopsWhenTickKillsPlayer(t *testing.T) {
	// Enemy a hits the player (roll 0 = left, then reward roll 1). Enemy b
	// waits (roll 4). The player's death stops the catch-up loop.
	dice := &seqDice{vals: []int{0, 1, 4}}
	arena := newTestArena(t, NewOpenField(5, 5), dice,
		playerDesc(1, 2, 1, 2),
		[]Descriptor{enemyDesc("a", 2, 1, 3, 1), enemyDesc("b", 0, 1, 3, 1)})
	p := arena.Player()

	p.MoveUp()
	fired := arena.Advance(550 * time.Millisecond)

	if fired != 1 {
		t.Errorf("Advance() = %d, expected 1", fired)
	}
	if arena.Driver().Running() {
		t.Error("driver should stop when the player loses a life")
	}
	if p.Lives() != 1 || p.Energy() != 0 {
		t.Errorf("player energy/lives = %d/%d, expected 0/1", p.Energy(), p.Lives())
	}
	if got := arena.Enemies()[1].Position(); got != core.P(0, 1) {
		t.Errorf("enemy b at %v, expected to wait at (0,1)", got)
	}
	if len(dice.vals) != 0 {
		t.Errorf("unused rolls %v, expected every roll consumed", dice.vals)
	}
	if fired := arena.Advance(time.Second); fired != 0 {
		t.Errorf("stopped driver fired %d ticks", fired)
	}
}

func TestArenaTickInterval(t *testing.T) {
	arena, err := NewArena(NewOpenField(5, 5), WithTickInterval(250*time.Millisecond))
	if err != nil {
		t.Fatalf("NewArena() failed: %v", err)
	}
	if arena.Driver().Interval() != 250*time.Millisecond {
		t.Errorf("Interval() = %v, expected 250ms", arena.Driver().Interval())
	}
}
