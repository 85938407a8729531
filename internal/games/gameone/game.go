// Package gameone plugs the grid simulation into the arcade platform: one
// player hunts a roster of enemies across a tile map while the enemies roll
// their moves on a fixed tick.
package gameone

import (
	"io"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameone/internal/config"
	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/levels"
	"github.com/vovakirdan/gameone/internal/registry"
	"github.com/vovakirdan/gameone/internal/sim"
	"github.com/vovakirdan/gameone/internal/tilemap"
)

func init() {
	registry.Register("gameone", func() registry.Game { return New() })
	registry.Register("gameone_open", func() registry.Game { return NewOpenField() })
}

// Mode selects where the arena comes from.
type Mode int

const (
	ModeLevel     Mode = iota // Level file with a tile map
	ModeOpenField             // Obstacle-free field from the config
)

// OpenFieldID is the level ID reported for open field rounds.
const OpenFieldID = "open_field"

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	selectedLevel    string
	logger           = log.New(io.Discard)
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// SetLevel selects the level played in level mode: a built-in level ID, an
// ID inside the configured levels directory, or a path to a level file or a
// bare .txt map. Empty uses the configured default.
func SetLevel(name string) {
	selectedLevel = name
}

// SetLogger sets the logger for level loading and simulation events.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game implements registry.Game on top of sim.Arena.
type Game struct {
	mode Mode

	arena     *sim.Arena
	tiles     *tilemap.Map // nil on the open field
	selected  string       // per-instance level choice, overrides SetLevel
	levelID   string
	levelName string

	runtime      core.RuntimeConfig
	cfg          config.GameOneConfig
	difficulty   *config.DifficultyManager
	baseInterval time.Duration
	frameDT      time.Duration

	frames   uint64
	score    int
	paused   bool
	gameOver bool
	won      bool

	minScreenW     int
	minScreenH     int
	screenTooSmall bool
}

// New creates a game played on a level.
func New() *Game {
	return &Game{mode: ModeLevel}
}

// NewOpenField creates a game played on the configured open field.
func NewOpenField() *Game {
	return &Game{mode: ModeOpenField}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	if g.mode == ModeOpenField {
		return "gameone_open"
	}
	return "gameone"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	if g.mode == ModeOpenField {
		return "GameOne (Open Field)"
	}
	return "GameOne"
}

// SelectLevel chooses the level for this instance. It takes effect on the
// next Reset and accepts the same names as SetLevel.
func (g *Game) SelectLevel(name string) {
	g.selected = name
}

// UsesLevels reports whether the game is played on levels. Open field rounds
// ignore SelectLevel.
func (g *Game) UsesLevels() bool {
	return g.mode == ModeLevel
}

// LevelID returns the ID of the level being played.
func (g *Game) LevelID() string {
	return g.levelID
}

// LevelName returns the display name of the level being played.
func (g *Game) LevelName() string {
	return g.levelName
}

// Reset loads the configuration and the level and starts a new round.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Warn("using default config", "err", err)
		cfg = config.DefaultGameOneConfig()
	}
	if difficultyPreset != "" {
		config.ApplyPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	g.baseInterval = time.Duration(cfg.Simulation.TickIntervalMS) * time.Millisecond
	if g.baseInterval <= 0 {
		g.baseInterval = sim.DefaultTickInterval
	}
	tickRate := runtime.TickRate
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	g.frameDT = time.Second / time.Duration(tickRate)

	opts := []sim.Option{
		sim.WithSeed(runtime.Seed),
		sim.WithLogger(logger),
		sim.WithTickInterval(g.baseInterval),
	}
	if g.mode == ModeOpenField {
		g.buildOpenField(cfg.OpenField, opts)
	} else {
		g.buildLevel(cfg, opts)
	}

	g.frames = 0
	g.score = 0
	g.paused = false
	g.gameOver = false
	g.won = false

	columns, rows := g.arena.Columns(), g.arena.Rows()
	g.minScreenW = max(columns+2, 40)
	g.minScreenH = rows + 6
	g.screenTooSmall = runtime.ScreenW < g.minScreenW || runtime.ScreenH < g.minScreenH

	logger.Info("round started", "game", g.ID(), "level", g.levelID, "seed", runtime.Seed)
	g.updateState()
}

// buildLevel loads the selected level, falling back to the built-in default
// level and then to the open field when it cannot be played.
func (g *Game) buildLevel(cfg config.GameOneConfig, opts []sim.Option) {
	name := g.selected
	if name == "" {
		name = selectedLevel
	}
	lvl, err := resolveLevel(cfg.Simulation, name)
	if err == nil {
		g.arena, err = lvl.NewArena(opts...)
	}
	if err != nil {
		logger.Error("cannot play level, using the default", "err", err)
		lvl, err = levels.Embedded().LoadFile(levels.DefaultLevel)
		if err == nil {
			g.arena, err = lvl.NewArena(opts...)
		}
	}
	if err != nil {
		logger.Error("cannot play the default level", "err", err)
		g.buildOpenField(cfg.OpenField, opts)
		return
	}

	g.tiles = lvl.Map
	g.levelID = lvl.ID
	g.levelName = lvl.Name
}

// resolveLevel maps a level name to a loader and a file.
func resolveLevel(sc config.SimulationConfig, name string) (levels.Level, error) {
	if name == "" {
		name = sc.DefaultLevel
	}

	loader := levelLoader(sc)

	if path.Ext(name) == "" {
		return loader.LoadByID(name)
	}
	if _, err := os.Stat(name); err == nil {
		loader = levels.Dir(filepath.Dir(name))
		loader.SetLogger(logger)
		name = filepath.Base(name)
	}
	return loader.Load(filepath.ToSlash(name))
}

func levelLoader(sc config.SimulationConfig) *levels.Loader {
	loader := levels.Embedded()
	if sc.LevelsDir != "" {
		loader = levels.Dir(sc.LevelsDir)
	}
	loader.SetLogger(logger)
	return loader
}

// Levels lists the levels available to level mode, in play order.
func Levels() ([]levels.Level, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		cfg = config.DefaultGameOneConfig()
	}
	return levelLoader(cfg.Simulation).LoadAll()
}

// buildOpenField populates an obstacle-free arena from the config. An
// unusable config falls back to the built-in open field.
func (g *Game) buildOpenField(of config.OpenFieldConfig, opts []sim.Option) {
	arena, err := openFieldArena(of, opts)
	if err != nil {
		logger.Error("invalid open field config, using defaults", "err", err)
		arena, err = openFieldArena(config.DefaultGameOneConfig().OpenField, opts)
		if err != nil {
			panic(err)
		}
	}

	g.arena = arena
	g.tiles = nil
	g.levelID = OpenFieldID
	g.levelName = "Open Field"
}

func openFieldArena(of config.OpenFieldConfig, opts []sim.Option) (*sim.Arena, error) {
	arena, err := sim.NewArena(sim.NewOpenField(of.Columns, of.Rows), opts...)
	if err != nil {
		return nil, err
	}

	enemies := make([]sim.Descriptor, len(of.Enemies))
	for i, e := range of.Enemies {
		enemies[i] = descriptor(e, sim.KindEnemy)
	}
	if err := arena.Populate(descriptor(of.Player, sim.KindPlayer), enemies); err != nil {
		return nil, err
	}
	return arena, nil
}

func descriptor(a config.ActorConfig, kind sim.Kind) sim.Descriptor {
	return sim.Descriptor{
		Name:          a.Name,
		Kind:          kind,
		Origin:        core.P(a.X, a.Y),
		MaximumEnergy: a.MaximumEnergy,
		MaximumLives:  a.MaximumLives,
	}
}

// Step applies the frame's actions in order, then advances enemy time by
// one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	for _, action := range in.Actions {
		switch action {
		case core.ActionRestart:
			if g.gameOver {
				g.Reset(g.runtime)
				return core.StepResult{State: g.State()}
			}
			if p := g.arena.Player(); !p.IsAlive() && !p.IsSpent() {
				g.arena.Respawn()
				logger.Debug("player respawned", "lives", p.Lives())
			}
		case core.ActionPause:
			if !g.gameOver {
				g.paused = !g.paused
			}
		default:
			dir, ok := action.Direction()
			if ok && !g.paused && !g.gameOver {
				g.arena.Player().MoveDirection(dir)
				g.updateState()
			}
		}
	}

	if g.paused || g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.frames++
	g.arena.Advance(g.frameDT)
	g.updateState()

	driver := g.arena.Driver()
	driver.SetInterval(g.difficulty.TickInterval(g.baseInterval, g.score, int(driver.Ticks()))) //#nosec G115 -- tick count fits in int

	return core.StepResult{State: g.State()}
}

// updateState recomputes the score and the round outcome. Score counts enemy
// lives taken.
func (g *Game) updateState() {
	if g.gameOver {
		return
	}

	score, alive := 0, 0
	enemies := g.arena.Enemies()
	for _, e := range enemies {
		score += e.MaximumLives() - e.Lives()
		if e.IsAlive() {
			alive++
		}
	}
	g.score = score

	switch {
	case g.arena.Player().IsSpent():
		g.gameOver = true
	case len(enemies) > 0 && alive == 0:
		g.gameOver = true
		g.won = true
	}

	if g.gameOver {
		g.arena.Driver().Stop()
		logger.Info("round over", "level", g.levelID, "won", g.won, "score", g.score)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Won:      g.won,
		Paused:   g.paused,
	}
}

// Summary reports the round for session storage.
func (g *Game) Summary() registry.Summary {
	defeated := 0
	for _, e := range g.arena.Enemies() {
		if !e.IsAlive() {
			defeated++
		}
	}
	return registry.Summary{
		LevelID:         g.levelID,
		EnemiesDefeated: defeated,
		LivesLeft:       g.arena.Player().Lives(),
		Ticks:           int(g.arena.Driver().Ticks()), //#nosec G115 -- tick count fits in int
	}
}
