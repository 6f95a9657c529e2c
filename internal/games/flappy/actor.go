package flappy

import "github.com/vovakirdan/skyflap/internal/core"

// Actor is the player-controlled flying entity.
// X stays constant during a playthrough; the world scrolls instead.
type Actor struct {
	X, Y     float64 // Top-left corner of the bounding square
	Velocity float64 // Vertical velocity, positive is down
	Size     float64 // Side of the bounding square
}

// NewActor places an actor at its spawn position: configured x, vertical middle
// of the playfield, at rest.
func NewActor(p Params, g Geometry) Actor {
	size := p.ActorSize
	if size <= 0 {
		size = 1
	}
	return Actor{
		X:    p.ActorX,
		Y:    g.Height / 2,
		Size: size,
	}
}

// ApplyImpulse overwrites the velocity with the jump force.
func (a *Actor) ApplyImpulse(force float64) {
	a.Velocity = force
}

// Step integrates one fixed tick of gravity.
func (a *Actor) Step(gravity float64) {
	a.Velocity += gravity
	a.Y += a.Velocity
}

// MaxY returns the lowest valid top coordinate before touching the ground.
func (a Actor) MaxY(g Geometry) float64 {
	return g.Height - a.Size - g.Ground
}

// OutOfBounds reports whether the actor left the sky or sank into the ground.
func (a Actor) OutOfBounds(g Geometry) bool {
	return a.Y < 0 || a.Y > a.MaxY(g)
}

// Rect returns the actor's bounding square.
func (a Actor) Rect() core.Rect {
	return core.NewRect(a.X, a.Y, a.Size, a.Size)
}
