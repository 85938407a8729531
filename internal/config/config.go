// Package config provides YAML-based configuration loading and difficulty
// management for the game.
package config

// GameOneConfig contains all configuration for the game.
type GameOneConfig struct {
	Simulation SimulationConfig `yaml:"simulation"`
	OpenField  OpenFieldConfig  `yaml:"open_field"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// SimulationConfig defines enemy timing and which level is played.
type SimulationConfig struct {
	TickIntervalMS int    `yaml:"tick_interval_ms"` // Enemy decision period
	DefaultLevel   string `yaml:"default_level"`    // Level ID or file played by "gameone"
	LevelsDir      string `yaml:"levels_dir"`       // Extra level directory; empty uses built-in levels
}

// OpenFieldConfig defines the obstacle-free variant.
type OpenFieldConfig struct {
	Columns int           `yaml:"columns"`
	Rows    int           `yaml:"rows"`
	Player  ActorConfig   `yaml:"player"`
	Enemies []ActorConfig `yaml:"enemies"`
}

// ActorConfig places one actor on the open field.
type ActorConfig struct {
	Name          string `yaml:"name"`
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
	MaximumEnergy int    `yaml:"maximum_energy"`
	MaximumLives  int    `yaml:"maximum_lives"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"`  // Enemy speed-up at max difficulty
	MinTickMS       int     `yaml:"min_tick_interval"` // Fastest enemy tick allowed
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI value to a preset. Unknown values yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
