package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/registry"
	"github.com/vovakirdan/gameone/internal/storage"
)

var logger = log.New(io.Discard)

// SetLogger sets the logger for storage failures and session events.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// GameModel runs one game: it maps keys to actions, steps the game on every
// tick and records the result when a round ends.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	config     core.RuntimeConfig
	input      core.InputFrame
	state      core.GameState
	keys       *KeyMapper
	help       help.Model
	standalone bool // no menu to go back to; Back quits
	quitting   bool
	backToMenu bool
	recorded   bool // result of the current round is stored
}

// NewGameModel creates a model that returns to a menu on Back.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	h := help.New()
	h.Width = cfg.ScreenW

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, gameHeight(cfg.ScreenH)),
		store:  store,
		config: cfg,
		input:  core.NewInputFrame(),
		keys:   NewKeyMapper(),
		help:   h,
	}
}

// gameHeight leaves the last terminal row for the key help.
func gameHeight(h int) int {
	return max(1, h-1)
}

// gameConfig is the runtime config as the game sees it.
func (m GameModel) gameConfig() core.RuntimeConfig {
	cfg := m.config
	cfg.ScreenH = gameHeight(cfg.ScreenH)
	return cfg
}

// Init starts the round and the frame loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.gameConfig())
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Quit):
		m.recordAbandoned()
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, keys.Back):
		m.recordAbandoned()
		if m.standalone {
			m.quitting = true
			return m, tea.Quit
		}
		m.backToMenu = true
		return m, nil
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	}

	if action := m.keys.MapKey(msg); action != core.ActionNone {
		m.input.Set(action)
	}
	return m, nil
}

// handleResize resizes the screen. An unfinished round restarts so the game
// can lay itself out again.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, gameHeight(msg.Height))
	m.help.Width = msg.Width

	if !m.state.GameOver {
		m.game.Reset(m.gameConfig())
		m.state = m.game.State()
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.input.Has(core.ActionRestart) && m.state.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.gameConfig())
		m.state = m.game.State()
		m.recorded = false
		m.input.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.input)
	m.state = result.State

	if m.state.GameOver && !m.recorded {
		m.recordResult()
	}

	m.input.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordAbandoned stores an unfinished round that scored.
func (m *GameModel) recordAbandoned() {
	if !m.state.GameOver && m.state.Score > 0 {
		m.recordResult()
	}
}

// recordResult stores the score and, for games that report one, the round
// summary. Storage failures are logged and never interrupt play.
func (m *GameModel) recordResult() {
	m.recorded = true
	if m.store == nil {
		return
	}

	if m.state.Score > 0 {
		if _, err := m.store.SaveScore(m.game.ID(), m.state.Score); err != nil {
			logger.Warn("cannot save score", "game", m.game.ID(), "err", err)
		}
	}

	reporter, ok := m.game.(registry.Reporter)
	if !ok {
		return
	}
	sum := reporter.Summary()
	_, err := m.store.SaveSession(storage.SessionResult{
		GameID:          m.game.ID(),
		LevelID:         sum.LevelID,
		Outcome:         outcomeOf(m.state),
		Score:           m.state.Score,
		EnemiesDefeated: sum.EnemiesDefeated,
		LivesLeft:       sum.LivesLeft,
		Ticks:           sum.Ticks,
	})
	if err != nil {
		logger.Warn("cannot save session", "game", m.game.ID(), "err", err)
	}
}

func outcomeOf(s core.GameState) string {
	switch {
	case s.Won:
		return storage.OutcomeWon
	case s.GameOver:
		return storage.OutcomeLost
	default:
		return storage.OutcomeAbandoned
	}
}

// saveScreenshot writes the current frame as plain text under
// ~/.gameone/screenshots.
func (m *GameModel) saveScreenshot() {
	m.screen.Clear()
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("cannot save screenshot", "err", err)
		return
	}
	dir := filepath.Join(home, ".gameone", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		logger.Warn("cannot save screenshot", "err", err)
		return
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	if err := os.WriteFile(filepath.Join(dir, name), []byte(m.screen.String()), 0o600); err != nil {
		logger.Warn("cannot save screenshot", "err", err)
	}
}

// View renders the game frame and the key help below it.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + theme.Controls.Render(m.help.View(m.keys.Keys()))
}

// State returns the last state reported by the game.
func (m GameModel) State() core.GameState {
	return m.state
}

// IsQuitting returns true if the user asked to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to go back to the menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays a single game in the terminal until the user quits.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) error {
	model := NewGameModel(game, store, cfg)
	model.standalone = true

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
