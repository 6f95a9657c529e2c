package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
// Presets are applied once at load time, so parameters stay constant within a playthrough.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", name)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Obstacles.GapHeight *= 1.2
		cfg.Obstacles.SpawnIntervalMs = cfg.Obstacles.SpawnIntervalMs * 5 / 4
	case DifficultyHard:
		cfg.Obstacles.GapHeight *= 0.8
		cfg.Physics.ScrollSpeed *= 1.25
	}
}
