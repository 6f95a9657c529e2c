package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the game configuration.
// Search order: customPath -> ~/.skyflap/configs/skyflap.yaml -> ./configs/skyflap.yaml -> embedded default.
// Files are applied on top of the defaults, so partial files are valid.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return DefaultConfig(), fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	if userCfgPath := userConfigPath("skyflap.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	if data, err := os.ReadFile(filepath.Join("configs", "skyflap.yaml")); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig and normalizes the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	cfg.Normalize()
	return cfg, nil
}

// Normalize replaces values that would make the game unplayable with defaults.
// Geometry is left alone: the simulation clamps degenerate playfields itself.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.Actor.Size <= 0 {
		c.Actor.Size = def.Actor.Size
	}
	if c.Obstacles.Width <= 0 {
		c.Obstacles.Width = def.Obstacles.Width
	}
	if c.Obstacles.GapHeight <= 0 {
		c.Obstacles.GapHeight = def.Obstacles.GapHeight
	}
	if c.Obstacles.MinTopHeight < 0 {
		c.Obstacles.MinTopHeight = 0
	}
	if c.Obstacles.SpawnIntervalMs <= 0 {
		c.Obstacles.SpawnIntervalMs = def.Obstacles.SpawnIntervalMs
	}
	if c.Obstacles.DespawnMargin < 0 {
		c.Obstacles.DespawnMargin = 0
	}
	if c.Playfield.CellWidth <= 0 {
		c.Playfield.CellWidth = def.Playfield.CellWidth
	}
	if c.Playfield.CellHeight <= 0 {
		c.Playfield.CellHeight = def.Playfield.CellHeight
	}
	if c.Session.TickRate <= 0 {
		c.Session.TickRate = def.Session.TickRate
	}
	if c.Session.AbortPolicy != "fold" && c.Session.AbortPolicy != "discard" {
		c.Session.AbortPolicy = def.Session.AbortPolicy
	}
	if c.Rewards.QueueSize <= 0 {
		c.Rewards.QueueSize = def.Rewards.QueueSize
	}
	if c.Rewards.Amount <= 0 {
		c.Rewards.Amount = def.Rewards.Amount
	}
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".skyflap", "configs", filename)
}
