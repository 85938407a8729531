package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.gameone/configs/gameone.yaml -> ./configs/gameone.yaml -> embedded default
func Load(customPath string) (GameOneConfig, error) {
	cfg := DefaultGameOneConfig()

	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath("gameone.yaml"), filepath.Join("configs", "gameone.yaml")} {
		if path == "" {
			continue
		}
		if data, err := os.ReadFile(path); err == nil {
			fileCfg := DefaultGameOneConfig()
			if err := yaml.Unmarshal(data, &fileCfg); err == nil {
				return fileCfg, nil
			}
		}
	}

	embedded := DefaultGameOneConfig()
	if err := yaml.Unmarshal(defaultGameOneYAML, &embedded); err != nil {
		return cfg, nil // Fallback to hardcoded if embed fails
	}
	return embedded, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gameone", "configs", filename)
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *GameOneConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust the open field roster based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.OpenField.Player.MaximumLives = 5
	case DifficultyHard:
		cfg.OpenField.Player.MaximumLives = 2
		cfg.OpenField.Player.MaximumEnergy = max(1, cfg.OpenField.Player.MaximumEnergy-2)
	}
}
