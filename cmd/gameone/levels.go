package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gameone/internal/games/gameone"
)

var flagShowWarnings bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the playable levels",
	Long: `List the levels of level mode: the built-in set, or the levels
directory named in the config (simulation.levels_dir).

Levels whose roster does not fit their map still load; the mismatches are
reported as warnings.

Examples:
  gameone levels
  gameone levels --warnings
  gameone levels --config ./gameone.yaml`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func init() {
	levelsCmd.Flags().BoolVarP(&flagShowWarnings, "warnings", "w", false, "Print load warnings for each level")
}

func runLevels(_ *cobra.Command, _ []string) error {
	lvls, err := gameone.Levels()
	if err != nil {
		return err
	}
	if len(lvls) == 0 {
		fmt.Println("No levels found.")
		return nil
	}

	width := len("ID")
	for _, l := range lvls {
		width = max(width, len(l.ID))
	}

	fmt.Printf("  %-*s  %-18s  %-6s  %-7s  %s\n", width, "ID", "Name", "Size", "Enemies", "Warnings")
	for _, l := range lvls {
		size := fmt.Sprintf("%dx%d", l.Map.Columns(), l.Map.Rows())
		fmt.Printf("  %-*s  %-18s  %-6s  %-7d  %d\n", width, l.ID, l.Name, size, len(l.Enemies), len(l.Warnings))
		if flagShowWarnings {
			for _, w := range l.Warnings {
				fmt.Printf("      ! %s\n", w)
			}
		}
	}
	return nil
}
