// Package registry keeps the set of playable game variants.
// Variants register themselves in init() functions so the CLI and the SSH
// server can discover them without importing each one by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/gameone/internal/core"
)

// Game is what the platform drives. Implementations hold no terminal state:
// the platform maps keys to actions, paces frames and paints the screen.
type Game interface {
	// ID is the stable identifier used on the command line and in storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a fresh round. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one platform frame with the actions collected since the
	// previous frame.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current frame. The screen is cleared beforehand.
	Render(dst *core.Screen)

	// State returns score and round status.
	State() core.GameState
}

// Summary describes a finished round in more detail than GameState.
type Summary struct {
	LevelID         string
	EnemiesDefeated int
	LivesLeft       int
	Ticks           int
}

// Reporter is implemented by games that can summarize a finished round.
// The platform records the summary next to the score.
type Reporter interface {
	Summary() Summary
}

// LevelSelector is implemented by games that can start on a chosen level.
// UsesLevels reports whether the instance plays levels at all.
type LevelSelector interface {
	SelectLevel(name string)
	UsesLevels() bool
}

// GameInfo contains metadata about a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new game instance.
type Factory func() Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a factory under id. It panics on duplicate IDs.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{ID: id, Title: titles[id]})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}

	return f(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns the registered IDs in order.
func IDs() []string {
	games := List()
	ids := make([]string, len(games))
	for i, g := range games {
		ids[i] = g.ID
	}
	return ids
}
