package config

import (
	_ "embed"
)

//go:embed defaults/gameone.yaml
var defaultGameOneYAML []byte

// DefaultGameOneConfig returns the hardcoded configuration used when no YAML
// source can be read.
func DefaultGameOneConfig() GameOneConfig {
	return GameOneConfig{
		Simulation: SimulationConfig{
			TickIntervalMS: 100,
			DefaultLevel:   "level1",
		},
		OpenField: OpenFieldConfig{
			Columns: 10,
			Rows:    10,
			Player:  ActorConfig{Name: "Hero", X: 0, Y: 0, MaximumEnergy: 5, MaximumLives: 3},
			Enemies: []ActorConfig{
				{Name: "Blob", X: 9, Y: 9, MaximumEnergy: 2, MaximumLives: 1},
				{Name: "Slime", X: 9, Y: 0, MaximumEnergy: 2, MaximumLives: 1},
				{Name: "Bat", X: 0, Y: 9, MaximumEnergy: 1, MaximumLives: 2},
			},
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 6,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier: 1.0,
				MinTickMS:       40,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "gameone", "gameone_open":
		return defaultGameOneYAML
	default:
		return nil
	}
}
