package flappy

import (
	"slices"
	"time"

	"github.com/vovakirdan/skyflap/internal/core"
)

// Rand is the source of randomness used for gap placement.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Obstacle is a vertical wall with an opening between GapTopY and GapBottomY.
type Obstacle struct {
	X          float64 // Left edge
	GapTopY    float64 // Bottom of the upper section
	GapBottomY float64 // Top of the lower section
	Passed     bool    // Set once when the actor clears the obstacle
}

// TopRect returns the upper section: [0, GapTopY).
func (o Obstacle) TopRect(width float64) core.Rect {
	return core.NewRect(o.X, 0, width, o.GapTopY)
}

// BottomRect returns the lower section: [GapBottomY, floor).
func (o Obstacle) BottomRect(width float64, g Geometry) core.Rect {
	return core.NewRect(o.X, o.GapBottomY, width, g.Floor()-o.GapBottomY)
}

// ObstacleField holds the live obstacles of one playthrough, ordered by spawn time.
type ObstacleField struct {
	obstacles []Obstacle

	rng       Rand
	width     float64
	gapHeight float64
	minTop    float64
	speed     float64
	margin    float64
	interval  time.Duration

	lastSpawn time.Duration
	spawned   bool
}

// NewObstacleField creates an empty field with the given parameters.
func NewObstacleField(p Params, rng Rand) *ObstacleField {
	return &ObstacleField{
		obstacles: make([]Obstacle, 0, 8),
		rng:       rng,
		width:     p.ObstacleWidth,
		gapHeight: p.GapHeight,
		minTop:    p.MinTopHeight,
		speed:     p.ScrollSpeed,
		margin:    p.DespawnMargin,
		interval:  p.SpawnInterval,
	}
}

// Reset removes all obstacles and resets the spawn timer.
func (f *ObstacleField) Reset() {
	f.obstacles = f.obstacles[:0]
	f.lastSpawn = 0
	f.spawned = false
}

// Advance scrolls every obstacle left and prunes the ones far off-screen.
func (f *ObstacleField) Advance() {
	limit := -f.width - f.margin
	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		o.X -= f.speed
		if o.X >= limit {
			kept = append(kept, o)
		}
	}
	f.obstacles = kept
}

// MaybeSpawn appends a new obstacle at the right edge once the spawn interval has
// elapsed since the previous spawn. The first call after Reset always spawns.
// now is simulation time.
func (f *ObstacleField) MaybeSpawn(now time.Duration, g Geometry) bool {
	if f.spawned && now-f.lastSpawn < f.interval {
		return false
	}
	f.SpawnAt(g.Width, g)
	f.lastSpawn = now
	f.spawned = true
	return true
}

// SpawnAt appends an obstacle at x with a freshly sampled gap.
func (f *ObstacleField) SpawnAt(x float64, g Geometry) Obstacle {
	top := SampleGapTop(f.rng.Float64(), g, f.gapHeight, f.minTop)
	o := Obstacle{
		X:          x,
		GapTopY:    top,
		GapBottomY: top + f.gapHeight,
	}
	f.obstacles = append(f.obstacles, o)
	return o
}

// EvaluatePasses marks every unpassed obstacle whose right edge is left of actorX
// and returns the newly passed ones in ascending x order.
func (f *ObstacleField) EvaluatePasses(actorX float64) []Obstacle {
	var passed []Obstacle
	for i := range f.obstacles {
		o := &f.obstacles[i]
		if o.Passed || o.X+f.width >= actorX {
			continue
		}
		o.Passed = true
		passed = append(passed, *o)
	}
	slices.SortStableFunc(passed, func(a, b Obstacle) int {
		switch {
		case a.X < b.X:
			return -1
		case a.X > b.X:
			return 1
		}
		return 0
	})
	return passed
}

// Obstacles returns a copy of the live obstacles.
func (f *ObstacleField) Obstacles() []Obstacle {
	return slices.Clone(f.obstacles)
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Width returns the obstacle width.
func (f *ObstacleField) Width() float64 {
	return f.width
}

// Rightmost returns the largest obstacle x, or false when the field is empty.
func (f *ObstacleField) Rightmost() (float64, bool) {
	if len(f.obstacles) == 0 {
		return 0, false
	}
	x := f.obstacles[0].X
	for _, o := range f.obstacles[1:] {
		x = max(x, o.X)
	}
	return x, true
}

// SampleGapTop maps u in [0, 1) to a gap top inside
// [minTop, floor - gapHeight - minTop]. When that range is empty the gap is
// centered in the playable area, and the result is never negative.
func SampleGapTop(u float64, g Geometry, gapHeight, minTop float64) float64 {
	available := g.Floor()
	lo := minTop
	hi := available - gapHeight - minTop

	var top float64
	if hi >= lo {
		top = lo + u*(hi-lo)
	} else {
		top = (available - gapHeight) / 2
	}
	return max(top, 0)
}
