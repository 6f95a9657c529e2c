package flappy

// Attract-mode layout.
const (
	attractInitial = 5
	attractSpacing = 300
	attractOffset  = -100
	attractLead    = 50  // New obstacles appear this far past the right edge
	attractTrigger = 200 // Spawn once the rightmost obstacle is this far inside
)

// attract is the decorative obstacle stream shown while Idle.
// It has its own field and never touches the actor, score or hooks.
type attract struct {
	field  *ObstacleField
	seeded bool
}

func newAttract(p Params, rng Rand) *attract {
	return &attract{field: NewObstacleField(p, rng)}
}

func (a *attract) tick(g Geometry) {
	if !a.seeded {
		for i := range attractInitial {
			a.field.SpawnAt(float64(i*attractSpacing+attractOffset), g)
		}
		a.seeded = true
	}
	a.field.Advance()
	if x, ok := a.field.Rightmost(); !ok || x < g.Width-attractTrigger {
		a.field.SpawnAt(g.Width+attractLead, g)
	}
}

func (a *attract) obstacles() []Obstacle {
	return a.field.Obstacles()
}
