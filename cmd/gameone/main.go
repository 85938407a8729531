// gameone is a turn-paced grid game for the terminal: move across a tiled
// map, fight the enemies that chase you and keep your energy up.
//
// Usage:
//
//	gameone list              - List available game variants
//	gameone levels            - List levels and their warnings
//	gameone play [game]       - Play a game (default: gameone)
//	gameone menu              - Start menu to pick games interactively
//	gameone serve             - Start SSH server for remote play
//	gameone scores [game]     - Show high scores and recent rounds
//
// Global flags:
//
//	--fps <rate>          - Set frame rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.gameone/scores.db)
//	--config <path>       - Game config YAML
//	--difficulty <name>   - Difficulty preset: easy, normal, hard, fixed
//	--theme <name>        - Menu theme: default, mono
//	--log-level <level>   - debug, info, warn, error
//	--log-file <path>     - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameone/internal/games/gameone"
	"github.com/vovakirdan/gameone/internal/platform/tui"
	"github.com/vovakirdan/gameone/internal/tilemap"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagTheme      string
	flagLogLevel   string
	flagLogFile    string
)

var (
	logger = log.New(io.Discard)

	// logFile is closed when the command finishes.
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gameone",
	Short: "GameOne - hunt the enemies on a grid in your terminal",
	Long: `GameOne is a small grid game for the terminal. Walk the map, bump
into enemies to fight them and defeat them all before they drain your energy.

Available commands:
  list     - Show all game variants
  levels   - Show the levels that can be played
  play     - Play a game directly
  menu     - Interactive game picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores and recent rounds

Examples:
  gameone play
  gameone play --level level2
  gameone play gameone_open --difficulty hard
  gameone menu
  gameone serve --ssh :2222
  gameone scores gameone`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gameone/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagTheme, "theme", "default", "Menu theme: default, mono")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// setup applies the global flags to the game and UI packages.
func setup(cmd *cobra.Command, _ []string) error {
	l, err := newLogger(cmd.Name() == serveCmd.Name())
	if err != nil {
		return err
	}
	logger = l
	gameone.SetLogger(logger)
	tilemap.SetLogger(logger)
	tui.SetLogger(logger)

	gameone.SetConfigPath(flagConfig)
	gameone.SetDifficultyPreset(flagDifficulty)

	theme, ok := tui.ThemeByName(flagTheme)
	if !ok {
		return fmt.Errorf("unknown theme %q", flagTheme)
	}
	tui.SetTheme(theme)
	return nil
}

// newLogger builds the shared logger. Terminal UIs own the screen, so they
// only log when --log-file is set; the server logs to stderr by default.
func newLogger(toStderr bool) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	case toStderr:
		w = os.Stderr
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gameone",
		Level:           level,
	}), nil
}
