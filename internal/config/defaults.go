package config

import (
	_ "embed"
)

//go:embed defaults/skyflap.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded default configuration.
// It mirrors defaults/skyflap.yaml and is used when the embedded file cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Physics: PhysicsConfig{
			Gravity:     0.6,
			JumpForce:   -12,
			ScrollSpeed: 3,
		},
		Actor: ActorConfig{
			X:    100,
			Size: 40,
		},
		Obstacles: ObstacleConfig{
			Width:           80,
			GapHeight:       200,
			MinTopHeight:    100,
			SpawnIntervalMs: 2000,
			DespawnMargin:   50,
		},
		Playfield: PlayfieldConfig{
			Width:        800,
			Height:       600,
			GroundHeight: 64,
			CellWidth:    10,
			CellHeight:   25,
		},
		Session: SessionConfig{
			TickRate:    60,
			AbortPolicy: "fold",
		},
		Rewards: RewardConfig{
			Enabled:   true,
			QueueSize: 64,
			Amount:    1,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultYAML
}
