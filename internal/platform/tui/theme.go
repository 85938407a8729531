package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles shared by the menus, the level picker and the
// scoreboard.
type Theme struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	ItemNormal  lipgloss.Style
	ItemActive  lipgloss.Style
	Badge       lipgloss.Style // wins counter next to a level
	Warning     lipgloss.Style
	Controls    lipgloss.Style
	Border      lipgloss.Style
}

// DefaultTheme returns the colour theme.
func DefaultTheme() Theme {
	return Theme{
		Title:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		Description: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		ItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		Badge:       lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		Warning:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		Controls:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:      lipgloss.NewStyle().BorderForeground(lipgloss.Color("240")),
	}
}

// MonochromeTheme drops colour and keeps emphasis.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Title:       plain.Bold(true),
		Description: plain.Faint(true),
		ItemNormal:  plain,
		ItemActive:  plain.Bold(true).Underline(true),
		Badge:       plain,
		Warning:     plain.Italic(true),
		Controls:    plain.Faint(true),
		Border:      plain,
	}
}

var theme = DefaultTheme()

// SetTheme replaces the theme used by the menus and the scoreboard.
func SetTheme(t Theme) {
	theme = t
}

// ThemeByName returns a theme by name. The second result is false for
// unknown names.
func ThemeByName(name string) (Theme, bool) {
	switch name {
	case "", "default":
		return DefaultTheme(), true
	case "mono", "monochrome":
		return MonochromeTheme(), true
	default:
		return Theme{}, false
	}
}
