package flappy

import (
	"time"

	"github.com/vovakirdan/skyflap/internal/config"
)

// Params are the fixed tuning values of a session.
// They do not change during a playthrough.
type Params struct {
	Gravity     float64 // Velocity added per tick
	JumpForce   float64 // Velocity set by an impulse (negative = up)
	ScrollSpeed float64 // Obstacle movement per tick

	ActorX    float64
	ActorSize float64

	ObstacleWidth float64
	GapHeight     float64
	MinTopHeight  float64
	DespawnMargin float64
	SpawnInterval time.Duration

	TickRate    int
	AbortPolicy AbortPolicy
}

// ParamsFromConfig converts loaded configuration into session parameters.
func ParamsFromConfig(cfg config.Config) Params {
	policy, err := ParseAbortPolicy(cfg.Session.AbortPolicy)
	if err != nil {
		policy = AbortFoldScore
	}
	tickRate := cfg.Session.TickRate
	if tickRate <= 0 {
		tickRate = 60
	}
	return Params{
		Gravity:       cfg.Physics.Gravity,
		JumpForce:     cfg.Physics.JumpForce,
		ScrollSpeed:   cfg.Physics.ScrollSpeed,
		ActorX:        cfg.Actor.X,
		ActorSize:     cfg.Actor.Size,
		ObstacleWidth: cfg.Obstacles.Width,
		GapHeight:     cfg.Obstacles.GapHeight,
		MinTopHeight:  cfg.Obstacles.MinTopHeight,
		DespawnMargin: cfg.Obstacles.DespawnMargin,
		SpawnInterval: time.Duration(cfg.Obstacles.SpawnIntervalMs) * time.Millisecond,
		TickRate:      tickRate,
		AbortPolicy:   policy,
	}
}

// DefaultParams returns the parameters of the default configuration.
func DefaultParams() Params {
	return ParamsFromConfig(config.DefaultConfig())
}

// Geometry is the playfield size. It may change between ticks (viewport resize)
// and is read once at the start of every tick.
type Geometry struct {
	Width  float64
	Height float64
	Ground float64 // Height of the ground strip at the bottom
}

// GeometryFromConfig returns the configured default playfield.
func GeometryFromConfig(cfg config.Config) Geometry {
	return Geometry{
		Width:  cfg.Playfield.Width,
		Height: cfg.Playfield.Height,
		Ground: cfg.Playfield.GroundHeight,
	}
}

// Floor returns the y-coordinate where the ground starts.
func (g Geometry) Floor() float64 {
	return g.Height - g.Ground
}
