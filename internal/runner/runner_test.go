package runner

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

type fixedRand float64

func (r fixedRand) Float64() float64 { return float64(r) }

var testGeometry = flappy.Geometry{Width: 800, Height: 600, Ground: 64}

func newSession(opts ...flappy.Option) *flappy.Session {
	base := []flappy.Option{
		flappy.WithGeometry(testGeometry),
		flappy.WithRand(fixedRand(0.5)),
		flappy.WithLogger(log.New(io.Discard)),
	}
	return flappy.NewSession(flappy.DefaultParams(), append(base, opts...)...)
}

func TestActivateAppliedOnNextStep(t *testing.T) {
	s := newSession()
	r := New(s, WithLogger(log.New(io.Discard)))

	r.Activate()
	if s.State() != flappy.StateIdle {
		t.Fatal("Activate should not touch the session before the next step")
	}

	r.Step()
	if s.State() != flappy.StateRunning {
		t.Fatalf("state after step = %v, expected running", s.State())
	}

	r.Activate()
	r.Step()
	// Impulse applied before the physics step of the same tick.
	if v := s.Actor().Velocity; v > -11 {
		t.Errorf("velocity = %f, expected the jump to apply before gravity", v)
	}
}

func TestBackAbortsToIdle(t *testing.T) {
	s := newSession()
	r := New(s)
	r.Activate()
	r.Step()

	r.Send(core.ActionBack)
	r.Step()

	if s.State() != flappy.StateIdle {
		t.Errorf("state = %v, expected idle", s.State())
	}
}

func TestSimulateWithoutPilotFalls(t *testing.T) {
	r := New(newSession(), WithLogger(log.New(io.Discard)))

	snap := r.Simulate(1000)

	if snap.State != flappy.StateEnded {
		t.Fatalf("snapshot = %s, expected the actor to hit the ground", snap)
	}
	if snap.Actor.Y != testGeometry.Height-snap.Actor.Size-testGeometry.Ground {
		t.Errorf("actor y = %f, expected resting on the ground", snap.Actor.Y)
	}
}

func TestAutopilotClearsObstacles(t *testing.T) {
	r := New(newSession(), WithAutopilot(NewAutopilot()))

	snap := r.Simulate(1000)

	if snap.State != flappy.StateRunning {
		t.Fatalf("autopilot crashed: %s", snap)
	}
	if snap.Score < 5 {
		t.Errorf("score = %d after 1000 ticks, expected at least 5", snap.Score)
	}
}

func TestRunStopsAtTickLimit(t *testing.T) {
	s := newSession(flappy.WithSeed(3))
	r := New(s, WithAutopilot(NewAutopilot()), WithMaxTicks(30), WithLogger(log.New(io.Discard)))

	var wg sync.WaitGroup
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ctx.Err() == nil {
			r.Snapshot()
			time.Sleep(time.Millisecond)
		}
	}()

	snap, err := r.Run(context.Background())
	cancel()
	wg.Wait()

	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if snap.State != flappy.StateRunning || snap.Ticks != 30 {
		t.Errorf("snapshot = %s, expected 30 running ticks", snap)
	}
	if r.Steps() != 30 {
		t.Errorf("Steps() = %d, expected 30", r.Steps())
	}
}

func TestRunEndsWithPlaythrough(t *testing.T) {
	p := flappy.DefaultParams()
	p.TickRate = 1000
	s := flappy.NewSession(p, flappy.WithGeometry(testGeometry), flappy.WithLogger(log.New(io.Discard)))
	r := New(s, WithLogger(log.New(io.Discard)))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	snap, err := r.Run(ctx)

	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if snap.State != flappy.StateEnded {
		t.Errorf("snapshot = %s, expected ended", snap)
	}

	steps := r.Steps()
	time.Sleep(20 * time.Millisecond)
	if r.Steps() != steps {
		t.Error("runner kept ticking after the playthrough ended")
	}
}

func TestRunContextCancel(t *testing.T) {
	r := New(newSession(), WithAutopilot(NewAutopilot()), WithLogger(log.New(io.Discard)))
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := r.Run(ctx)
	if err == nil {
		t.Error("Run() should report the context error")
	}

	steps := r.Steps()
	time.Sleep(40 * time.Millisecond)
	if r.Steps() != steps {
		t.Error("runner ticked after Run returned")
	}
}
