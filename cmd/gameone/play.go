package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gameone/internal/core"
	"github.com/vovakirdan/gameone/internal/games/gameone"
	"github.com/vovakirdan/gameone/internal/platform/tui"
	"github.com/vovakirdan/gameone/internal/registry"
	"github.com/vovakirdan/gameone/internal/storage"
)

var flagLevel string

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing the specified game variant (default: gameone).

Level mode shows a level picker unless --level is given. --level accepts a
level ID, a level file (.json, .yaml) or a bare map (.txt).

Controls:
  Arrows/WASD/HJKL - Move, bump into an enemy to attack
  P                - Pause
  R                - Respawn after losing a life, restart after game over
  Ctrl+S           - Save a screenshot
  Esc/B            - Back
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - More lives, enemies speed up slowly
  normal - Default settings
  hard   - Fewer lives, enemies start fast
  fixed  - Enemies never speed up

Examples:
  gameone play
  gameone play --level level2
  gameone play --level ./my_levels/level5.yaml
  gameone play gameone_open --difficulty hard
  gameone play --config ./gameone.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level ID or path to a level file")
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := "gameone"
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'gameone list' to see available games", gameID)
	}

	cfg := terminalConfig()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	if sel, ok := game.(registry.LevelSelector); ok && sel.UsesLevels() {
		if flagLevel != "" {
			gameone.SetLevel(flagLevel)
		} else {
			selection, updated, selErr := tui.RunLevelSelector(store, cfg)
			if selErr != nil {
				return selErr
			}
			if selection == nil {
				return nil
			}
			cfg = updated
			sel.SelectLevel(selection.LevelID)
		}
	}

	if err := tui.Run(game, store, cfg); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

// terminalConfig builds the runtime config from the terminal size and the
// global flags.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
