package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/games/gameone"
	"github.com/vovakirdan/gameone/internal/levels"
	"github.com/vovakirdan/gameone/internal/storage"
)

// LevelEntry is one row of the level picker.
type LevelEntry struct {
	ID       string
	Name     string
	Size     string // "16x10"
	Enemies  int
	Wins     int
	Warnings int
}

// LevelSelection is the level chosen in the picker.
type LevelSelection struct {
	LevelID string
}

// LevelMenuModel is the level picker for level mode.
type LevelMenuModel struct {
	entries      []LevelEntry
	cursor       int
	scrollOffset int
	width        int
	height       int
	keyMapper    *KeyMapper
	selection    *LevelSelection
	quitting     bool
	back         bool
}

// NewLevelMenuModel builds the picker from loaded levels and per-level wins.
func NewLevelMenuModel(lvls []levels.Level, wins map[string]int, width, height int) LevelMenuModel {
	entries := make([]LevelEntry, len(lvls))
	for i, l := range lvls {
		entries[i] = LevelEntry{
			ID:       l.ID,
			Name:     l.Name,
			Size:     fmt.Sprintf("%dx%d", l.Map.Columns(), l.Map.Rows()),
			Enemies:  len(l.Enemies),
			Wins:     wins[l.ID],
			Warnings: len(l.Warnings),
		}
	}

	return LevelMenuModel{
		entries:   entries,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateScroll()
	}
	return m, nil
}

func (m LevelMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
			m.updateScroll()
		}
	case MenuActionDown:
		if m.cursor < len(m.entries)-1 {
			m.cursor++
			m.updateScroll()
		}
	case MenuActionSelect:
		if len(m.entries) > 0 {
			m.selection = &LevelSelection{LevelID: m.entries[m.cursor].ID}
			return m, tea.Quit
		}
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelMenuModel) visibleItems() int {
	return max(3, m.height-10)
}

// updateScroll keeps the cursor inside the visible window.
func (m *LevelMenuModel) updateScroll() {
	visible := m.visibleItems()
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	} else if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
}

// View renders the level list.
func (m LevelMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(theme.Title.Render("S E L E C T   L E V E L"), m.width))
	b.WriteString("\n\n")

	if len(m.entries) == 0 {
		b.WriteString(centerText(theme.Warning.Render("No levels found"), m.width))
		b.WriteString("\n")
	}

	end := min(len(m.entries), m.scrollOffset+m.visibleItems())
	if m.scrollOffset > 0 {
		b.WriteString(centerText(theme.Description.Render("... more above ..."), m.width))
		b.WriteString("\n")
	}
	for i := m.scrollOffset; i < end; i++ {
		b.WriteString(centerText(m.renderEntry(i), m.width))
		b.WriteString("\n")
	}
	if end < len(m.entries) {
		b.WriteString(centerText(theme.Description.Render("... more below ..."), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Play  |  Esc: Back  |  Q: Quit"
	b.WriteString(centerText(theme.Controls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m LevelMenuModel) renderEntry(i int) string {
	e := m.entries[i]
	cursor, style := "  ", theme.ItemNormal
	if i == m.cursor {
		cursor, style = "> ", theme.ItemActive
	}

	line := style.Render(fmt.Sprintf("%s%2d. %-16s", cursor, i+1, e.Name))
	line += theme.Description.Render(fmt.Sprintf(" %6s  %d enemies", e.Size, e.Enemies))
	if e.Wins > 0 {
		line += theme.Badge.Render(fmt.Sprintf("  ★ %d", e.Wins))
	}
	if e.Warnings > 0 {
		line += theme.Warning.Render(fmt.Sprintf("  ! %d", e.Warnings))
	}
	return line
}

// Selected returns the chosen level, or nil.
func (m LevelMenuModel) Selected() *LevelSelection {
	return m.selection
}

// IsQuitting returns true if user wants to quit.
func (m LevelMenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsBack returns true if user pressed back.
func (m LevelMenuModel) WantsBack() bool {
	return m.back
}

// loadLevelMenu builds the picker for the configured level set.
func loadLevelMenu(store *storage.Store, width, height int) (LevelMenuModel, error) {
	lvls, err := gameone.Levels()
	if err != nil {
		return LevelMenuModel{}, err
	}

	wins := map[string]int{}
	if store != nil {
		if w, err := store.LevelWins("gameone"); err == nil {
			wins = w
		} else {
			logger.Warn("cannot load level wins", "err", err)
		}
	}
	return NewLevelMenuModel(lvls, wins, width, height), nil
}

// RunLevelSelector runs the level picker. It returns nil when the user backs
// out or quits.
func RunLevelSelector(store *storage.Store, cfg core.RuntimeConfig) (*LevelSelection, core.RuntimeConfig, error) {
	model, err := loadLevelMenu(store, cfg.ScreenW, cfg.ScreenH)
	if err != nil {
		return nil, cfg, err
	}

	finalModel, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, cfg, err
	}

	m, ok := finalModel.(LevelMenuModel)
	if !ok {
		return nil, cfg, nil
	}
	cfg.ScreenW, cfg.ScreenH = m.width, m.height
	return m.Selected(), cfg, nil
}
