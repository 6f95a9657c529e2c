// Package config provides YAML-based game configuration loading, difficulty
// presets and environment parsing for server settings.
package config

// Config contains all tunable parameters of the game.
type Config struct {
	Physics   PhysicsConfig   `yaml:"physics"`
	Actor     ActorConfig     `yaml:"actor"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Playfield PlayfieldConfig `yaml:"playfield"`
	Session   SessionConfig   `yaml:"session"`
	Rewards   RewardConfig    `yaml:"rewards"`
}

// PhysicsConfig defines per-tick physics constants.
type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`      // Added to velocity every tick
	JumpForce   float64 `yaml:"jump_force"`   // Velocity set by an impulse (negative = up)
	ScrollSpeed float64 `yaml:"scroll_speed"` // Obstacle movement per tick
}

// ActorConfig defines the flying actor.
type ActorConfig struct {
	X    float64 `yaml:"x"`    // Fixed horizontal position
	Size float64 `yaml:"size"` // Side of the bounding square
}

// ObstacleConfig defines obstacle geometry and spawning.
type ObstacleConfig struct {
	Width           float64 `yaml:"width"`
	GapHeight       float64 `yaml:"gap_height"`
	MinTopHeight    float64 `yaml:"min_top_height"`
	SpawnIntervalMs int     `yaml:"spawn_interval_ms"`
	DespawnMargin   float64 `yaml:"despawn_margin"`
}

// PlayfieldConfig defines the world size and how it maps to terminal cells.
type PlayfieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
	CellWidth    float64 `yaml:"cell_width"`  // World units per terminal column
	CellHeight   float64 `yaml:"cell_height"` // World units per terminal row
}

// SessionConfig defines session-level behavior.
type SessionConfig struct {
	TickRate    int    `yaml:"tick_rate"`
	AbortPolicy string `yaml:"abort_policy"` // "fold" or "discard"
}

// RewardConfig defines the token reward dispatcher.
type RewardConfig struct {
	Enabled   bool `yaml:"enabled"`
	QueueSize int  `yaml:"queue_size"`
	Amount    int  `yaml:"amount"` // Tokens granted per obstacle
}
