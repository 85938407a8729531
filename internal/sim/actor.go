// Package sim implements the actor, combat and movement rules of the game.
//
// The package is single-threaded by contract: every mutation, including the
// enemy ticks fired by TickDriver.Advance, happens on the caller's goroutine.
// Listeners run synchronously after the mutation they report.
package sim

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/gameone/internal/core"
)

// ErrInvalidActor is returned when an actor descriptor has impossible maxima.
var ErrInvalidActor = errors.New("sim: invalid actor")

// Change tags which field of an actor a notification is about.
type Change int

const (
	ChangePosition Change = iota
	ChangeEnergy
	ChangeLives
)

func (c Change) String() string {
	switch c {
	case ChangePosition:
		return "position"
	case ChangeEnergy:
		return "energy"
	case ChangeLives:
		return "lives"
	default:
		return "unknown"
	}
}

// Listener receives actor change notifications.
type Listener func(a *Actor, c Change)

// Mover decides whether an actor may step onto a cell. Arena is the only
// production implementation; it may run combat as a side effect.
type Mover interface {
	CanMoveTo(a *Actor, dst core.Point) bool
}

// Descriptor is everything needed to build an actor at level load.
type Descriptor struct {
	Name          string
	Kind          Kind
	Origin        core.Point
	MaximumEnergy int
	MaximumLives  int
}

// Actor is a positioned entity with energy and lives.
type Actor struct {
	name     string
	kind     Kind
	origin   core.Point
	position core.Point

	energy        int
	maximumEnergy int
	lives         int
	maximumLives  int

	mover     Mover
	listeners []listenerEntry
	nextID    int
}

type listenerEntry struct {
	id int
	fn Listener
}

// NewActor creates an actor at its origin with full energy and lives.
func NewActor(d Descriptor) (*Actor, error) {
	if d.MaximumEnergy < 1 {
		return nil, fmt.Errorf("%w: %q maximumEnergy must be positive, got %d", ErrInvalidActor, d.Name, d.MaximumEnergy)
	}
	if d.MaximumLives < 1 {
		return nil, fmt.Errorf("%w: %q maximumLives must be positive, got %d", ErrInvalidActor, d.Name, d.MaximumLives)
	}

	return &Actor{
		name:          d.Name,
		kind:          d.Kind,
		origin:        d.Origin,
		position:      d.Origin,
		energy:        d.MaximumEnergy,
		maximumEnergy: d.MaximumEnergy,
		lives:         d.MaximumLives,
		maximumLives:  d.MaximumLives,
	}, nil
}

// Name returns the display name.
func (a *Actor) Name() string {
	if a.name == "" {
		return "no name"
	}
	return a.name
}

// Kind returns the actor's combat tag.
func (a *Actor) Kind() Kind {
	return a.kind
}

// Position returns the current cell.
func (a *Actor) Position() core.Point {
	return a.position
}

// Origin returns the cell Respawn moves back to.
func (a *Actor) Origin() core.Point {
	return a.origin
}

// X returns the current column.
func (a *Actor) X() int { return a.position.X }

// Y returns the current row.
func (a *Actor) Y() int { return a.position.Y }

// Energy returns the current energy in [0, MaximumEnergy].
func (a *Actor) Energy() int {
	return a.energy
}

// MaximumEnergy returns the energy cap restored by Respawn.
func (a *Actor) MaximumEnergy() int {
	return a.maximumEnergy
}

// Lives returns the remaining lives in [0, MaximumLives].
func (a *Actor) Lives() int {
	return a.lives
}

// MaximumLives returns the starting number of lives.
func (a *Actor) MaximumLives() int {
	return a.maximumLives
}

// IsAlive reports whether the actor has both lives and energy left.
// Dead actors cannot move and are ignored by occupancy checks.
func (a *Actor) IsAlive() bool {
	return a.lives > 0 && a.energy > 0
}

// IsSpent reports whether every life has been used up.
func (a *Actor) IsSpent() bool {
	return a.lives == 0
}

// SetMover attaches the legality oracle used by moves.
func (a *Actor) SetMover(m Mover) {
	a.mover = m
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s %q at %v", a.kind, a.Name(), a.position)
}

// Subscribe registers a listener and returns a function that removes it.
func (a *Actor) Subscribe(fn Listener) (unsubscribe func()) {
	a.nextID++
	id := a.nextID
	a.listeners = append(a.listeners, listenerEntry{id: id, fn: fn})

	return func() {
		for i, l := range a.listeners {
			if l.id == id {
				a.listeners = append(a.listeners[:i:i], a.listeners[i+1:]...)
				return
			}
		}
	}
}

func (a *Actor) emit(c Change) {
	// Copy so listeners may unsubscribe while being notified.
	listeners := append([]listenerEntry(nil), a.listeners...)
	for _, l := range listeners {
		l.fn(a, c)
	}
}

// MoveDirection tries to step one cell in d. Returns true when the move committed.
func (a *Actor) MoveDirection(d core.Direction) bool {
	return a.TryMoveTo(a.position.Add(d.Delta()))
}

func (a *Actor) MoveLeft() bool  { return a.MoveDirection(core.DirLeft) }
func (a *Actor) MoveRight() bool { return a.MoveDirection(core.DirRight) }
func (a *Actor) MoveUp() bool    { return a.MoveDirection(core.DirUp) }
func (a *Actor) MoveDown() bool  { return a.MoveDirection(core.DirDown) }

// TryMoveTo asks the mover for permission and commits the move on approval.
// An actor without a mover never moves.
func (a *Actor) TryMoveTo(dst core.Point) bool {
	if a.mover == nil || !a.mover.CanMoveTo(a, dst) {
		return false
	}
	a.position = dst
	a.emit(ChangePosition)
	return true
}

// Respawn restores full energy and moves back to the origin. Lives are kept,
// but a lives notification is still sent last so listeners can refresh.
func (a *Actor) Respawn() {
	a.energy = a.maximumEnergy
	a.position = a.origin

	a.emit(ChangeEnergy)
	a.emit(ChangePosition)
	a.emit(ChangeLives)
}

// StealEnergy removes energy, never below zero. Reaching zero costs a life.
func (a *Actor) StealEnergy(amount int) {
	a.energy = max(0, a.energy-amount)
	a.emit(ChangeEnergy)

	if a.energy == 0 {
		a.Die()
	}
}

// GiveEnergy adds energy, clamped to [0, maximumEnergy]. Negative amounts subtract.
func (a *Actor) GiveEnergy(amount int) {
	a.energy = core.Clamp(a.energy+amount, 0, a.maximumEnergy)
	a.emit(ChangeEnergy)
}

// Die costs one life. It is a no-op once lives reach zero.
func (a *Actor) Die() {
	if a.lives > 0 {
		a.lives--
		a.emit(ChangeLives)
	}
}

// Attack hits a hostile opponent for one energy and returns the energy the
// attacker earns back, 0 or 1. Non-hostile pairs return 0 without effect.
func (a *Actor) Attack(opponent *Actor, dice Dice) int {
	if opponent == nil || !CanAttack(a.kind, opponent.kind) {
		return 0
	}
	opponent.StealEnergy(1)
	return dice.Intn(2)
}
