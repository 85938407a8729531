package sim

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameone/internal/core"
)

// DefaultTickInterval is how often enemies act while the driver is ticking.
const DefaultTickInterval = 100 * time.Millisecond

// ErrInvalidArena is returned for maps without cells or rosters without a player.
var ErrInvalidArena = errors.New("sim: invalid arena")

// Arena owns the roster and the map, and is the single authority on whether
// a move may commit.
type Arena struct {
	oracle  MapOracle
	columns int
	rows    int

	player  *Actor
	enemies []*Actor

	dice   Dice
	logger *log.Logger
	driver *TickDriver

	rosterListeners []func()
	unsubscribe     []func()
}

// Option configures an Arena.
type Option func(*Arena)

// WithDice sets the randomness source. Defaults to a time-seeded generator.
func WithDice(d Dice) Option {
	return func(a *Arena) {
		a.dice = d
	}
}

// WithSeed is WithDice backed by math/rand with a fixed seed.
func WithSeed(seed int64) Option {
	return WithDice(rand.New(rand.NewSource(seed)))
}

// WithLogger sets the logger used for combat and driver transitions.
func WithLogger(l *log.Logger) Option {
	return func(a *Arena) {
		if l != nil {
			a.logger = l
		}
	}
}

// WithTickInterval sets the enemy tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(a *Arena) {
		a.driver.interval = d
	}
}

// NewArena creates an empty arena on the given map.
func NewArena(oracle MapOracle, opts ...Option) (*Arena, error) {
	if oracle == nil {
		return nil, fmt.Errorf("%w: nil map", ErrInvalidArena)
	}
	columns, rows := oracle.Bounds()
	if columns <= 0 || rows <= 0 {
		return nil, fmt.Errorf("%w: map size %dx%d", ErrInvalidArena, columns, rows)
	}

	a := &Arena{
		oracle:  oracle,
		columns: columns,
		rows:    rows,
		dice:    rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  log.New(io.Discard),
	}
	a.driver = NewTickDriver(DefaultTickInterval, a.Tick)
	a.driver.onState = func(s DriverState) {
		a.logger.Debug("tick driver", "state", s)
	}

	for _, opt := range opts {
		opt(a)
	}
	if a.driver.interval <= 0 {
		return nil, fmt.Errorf("%w: tick interval %v", ErrInvalidArena, a.driver.interval)
	}

	return a, nil
}

// Populate replaces the roster. It is all-or-nothing: on error the previous
// roster stays in place.
func (a *Arena) Populate(player Descriptor, enemies []Descriptor) error {
	if player.Kind != KindPlayer {
		return fmt.Errorf("%w: player descriptor has kind %s", ErrInvalidArena, player.Kind)
	}

	p, err := NewActor(player)
	if err != nil {
		return err
	}
	if !a.Bounds().ContainsPoint(p.Origin()) {
		return fmt.Errorf("%w: player origin %v outside %dx%d map", ErrInvalidArena, p.Origin(), a.columns, a.rows)
	}

	es := make([]*Actor, 0, len(enemies))
	for i, d := range enemies {
		if d.Kind != KindEnemy {
			return fmt.Errorf("%w: enemy %d has kind %s", ErrInvalidArena, i, d.Kind)
		}
		e, err := NewActor(d)
		if err != nil {
			return fmt.Errorf("enemy %d: %w", i, err)
		}
		if !a.Bounds().ContainsPoint(e.Origin()) {
			return fmt.Errorf("%w: enemy %q origin %v outside %dx%d map", ErrInvalidArena, e.Name(), e.Origin(), a.columns, a.rows)
		}
		es = append(es, e)
	}

	a.driver.Stop()
	for _, unsub := range a.unsubscribe {
		unsub()
	}
	a.unsubscribe = nil

	a.player = p
	a.enemies = es
	p.SetMover(a)
	for _, e := range es {
		e.SetMover(a)
	}

	a.unsubscribe = append(a.unsubscribe, p.Subscribe(a.onPlayerChanged))
	a.emitRosterChanged()

	return nil
}

// onPlayerChanged drives the tick driver. Any lives notification stops it,
// including the unchanged re-emit from Respawn.
func (a *Arena) onPlayerChanged(_ *Actor, c Change) {
	switch c {
	case ChangePosition:
		a.driver.Start()
	case ChangeLives:
		a.driver.Stop()
	}
}

// OnRosterChanged registers a listener fired after Populate swaps the roster.
func (a *Arena) OnRosterChanged(fn func()) {
	a.rosterListeners = append(a.rosterListeners, fn)
}

func (a *Arena) emitRosterChanged() {
	for _, fn := range a.rosterListeners {
		fn()
	}
}

// Columns returns the map width.
func (a *Arena) Columns() int {
	return a.columns
}

// Rows returns the map height.
func (a *Arena) Rows() int {
	return a.rows
}

// Bounds returns the playable area as a rectangle anchored at the origin.
func (a *Arena) Bounds() core.Rect {
	return core.NewRect(0, 0, a.columns, a.rows)
}

// Map returns the oracle the arena checks terrain against.
func (a *Arena) Map() MapOracle {
	return a.oracle
}

// Player returns the player, or nil before Populate.
func (a *Arena) Player() *Actor {
	return a.player
}

// Enemies returns the enemies in tick order. The slice must not be modified.
func (a *Arena) Enemies() []*Actor {
	return a.enemies
}

// Actors returns the player followed by the enemies.
func (a *Arena) Actors() []*Actor {
	actors := make([]*Actor, 0, len(a.enemies)+1)
	if a.player != nil {
		actors = append(actors, a.player)
	}
	return append(actors, a.enemies...)
}

// Driver exposes the enemy tick driver.
func (a *Arena) Driver() *TickDriver {
	return a.driver
}

// Advance feeds elapsed wall-clock time to the tick driver.
func (a *Arena) Advance(dt time.Duration) int {
	return a.driver.Advance(dt)
}

// Respawn brings the player back to its origin. The enemies wait until the
// player moves again.
func (a *Arena) Respawn() {
	if a.player != nil {
		a.player.Respawn()
	}
}

// CanMoveTo is the move-legality oracle. It denies moves by dead actors, off
// the map and onto blocking terrain. When the destination holds a living
// actor the move is denied as well; if that actor is hostile the mover
// attacks it first.
func (a *Arena) CanMoveTo(actor *Actor, dst core.Point) bool {
	if !actor.IsAlive() {
		return false
	}
	if !a.Bounds().ContainsPoint(dst) {
		return false
	}
	if !a.oracle.IsWalkable(dst.X, dst.Y) {
		return false
	}

	for _, other := range a.Actors() {
		if other == actor || !other.IsAlive() || other.Position() != dst {
			continue
		}
		if CanAttack(actor.Kind(), other.Kind()) {
			a.resolveCombat(actor, other)
		}
		return false
	}

	return true
}
