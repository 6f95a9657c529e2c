package runner

import "github.com/vovakirdan/skyflap/internal/games/flappy"

// Autopilot flaps whenever the actor is falling toward the bottom of the
// next gap.
type Autopilot struct {
	// Margin is the distance above the gap bottom that triggers a flap.
	Margin float64
}

// NewAutopilot returns an autopilot tuned for the default physics.
func NewAutopilot() *Autopilot {
	return &Autopilot{Margin: 20}
}

// ShouldFlap decides for the upcoming tick.
func (p *Autopilot) ShouldFlap(s *flappy.Session) bool {
	if s.State() != flappy.StateRunning {
		return false
	}

	a := s.Actor()
	if a.Velocity <= 0 {
		return false
	}

	g := s.Geometry()
	gapBottom := g.Floor()/2 + s.Params().GapHeight/2
	width := s.Params().ObstacleWidth
	nextX := 0.0
	found := false
	for _, o := range s.Obstacles() {
		if o.X+width < a.X {
			continue
		}
		if !found || o.X < nextX {
			nextX = o.X
			gapBottom = o.GapBottomY
			found = true
		}
	}

	return a.Y+a.Size > gapBottom-p.Margin
}
