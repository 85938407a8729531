package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameone/internal/platform/tui"
	"github.com/vovakirdan/gameone/internal/registry"
	"github.com/vovakirdan/gameone/internal/storage"
)

var (
	flagRecent int
	flagClear  bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores and recent rounds",
	Long: `Display the top 10 scores and the most recent rounds of a game.
Without a game, open the interactive scoreboard.

Examples:
  gameone scores
  gameone scores gameone
  gameone scores gameone_open --recent 20
  gameone scores gameone --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagRecent, "recent", 5, "Number of recent rounds to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and rounds of the given game")
}

func runScores(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClear {
			return fmt.Errorf("--clear needs a game, run 'gameone list' to see available games")
		}
		cfg := terminalConfig()
		_, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	gameID := args[0]
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("unknown game %q, run 'gameone list' to see available games", gameID)
	}

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Printf("Cleared scores and rounds for %s\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Printf("High Scores - %s\n\n", game.Title())
	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gameone play %s' to set the first high score!\n", gameID)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "Date")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10d  %s\n", i+1, entry.Score, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	sessions, err := store.RecentSessions(gameID, flagRecent)
	if err != nil {
		return fmt.Errorf("retrieving rounds: %w", err)
	}
	if len(sessions) == 0 {
		return nil
	}

	fmt.Println()
	fmt.Println("Recent rounds")
	fmt.Println()
	fmt.Printf("  %-12s  %-9s  %-5s  %-8s  %-5s  %s\n", "Level", "Outcome", "Score", "Defeated", "Lives", "Date")
	for _, s := range sessions {
		fmt.Printf("  %-12s  %-9s  %-5d  %-8d  %-5d  %s\n",
			s.LevelID, s.Outcome, s.Score, s.EnemiesDefeated, s.LivesLeft, s.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}
