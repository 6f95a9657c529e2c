// Package runner drives a flappy.Session without a terminal: a Clock supplies
// ticks, inputs may arrive from any goroutine and are applied at the start of
// the next tick, and an optional autopilot plays on its own.
package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/skyflap/internal/clock"
	"github.com/vovakirdan/skyflap/internal/core"
	"github.com/vovakirdan/skyflap/internal/games/flappy"
)

// Snapshot is a consistent read-only copy of the session.
type Snapshot struct {
	State     flappy.State
	Score     int
	HighScore int
	Ticks     uint64
	Actor     flappy.Actor
	Obstacles []flappy.Obstacle
}

func (s Snapshot) String() string {
	return fmt.Sprintf("state=%s score=%d high=%d ticks=%d", s.State, s.Score, s.HighScore, s.Ticks)
}

// Option configures a Runner.
type Option func(*Runner)

// WithAutopilot lets the runner flap on its own.
func WithAutopilot(p *Autopilot) Option {
	return func(r *Runner) {
		r.pilot = p
	}
}

// WithMaxTicks stops Run after n session ticks. Zero means no limit.
func WithMaxTicks(n uint64) Option {
	return func(r *Runner) {
		r.maxTicks = n
	}
}

// WithLogger sets the runner logger.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// Runner serializes all access to one session.
type Runner struct {
	mu      sync.Mutex
	session *flappy.Session
	pending core.InputFrame
	steps   uint64

	clock    *clock.Clock
	pilot    *Autopilot
	maxTicks uint64
	logger   *log.Logger
}

// New wraps a session. The clock rate follows the session tick rate.
func New(s *flappy.Session, opts ...Option) *Runner {
	r := &Runner{
		session: s,
		clock:   clock.New(s.Params().TickRate),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Send queues an action for the next tick. Safe for concurrent use.
func (r *Runner) Send(a core.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pending.Set(a)
}

// Activate queues the activate input.
func (r *Runner) Activate() {
	r.Send(core.ActionActivate)
}

// Step applies queued input and advances the session by one tick.
func (r *Runner) Step() flappy.TickResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	in := r.pending
	r.pending.Clear()
	if r.pilot != nil && r.pilot.ShouldFlap(r.session) {
		in.Set(core.ActionActivate)
	}

	if in.Has(core.ActionBack) {
		r.session.Abort()
	}
	if in.Has(core.ActionActivate) {
		r.session.Activate()
	}

	r.steps++
	return r.session.Tick()
}

// Run starts a playthrough if needed and ticks it on the clock until it ends,
// the tick limit is hit or ctx is done. It returns the final snapshot.
func (r *Runner) Run(ctx context.Context) (Snapshot, error) {
	r.mu.Lock()
	if r.session.State() != flappy.StateRunning {
		r.session.Start()
	}
	r.mu.Unlock()

	var ticked uint64
	err := r.clock.Start(ctx, func(_ time.Time) bool {
		res := r.Step()
		if res.Ended {
			r.logger.Info("playthrough ended", "cause", res.Cause, "score", r.session.Score())
			return false
		}
		ticked++
		return r.maxTicks == 0 || ticked < r.maxTicks
	})
	if err != nil {
		return Snapshot{}, fmt.Errorf("runner: %w", err)
	}

	select {
	case <-r.clock.Done():
	case <-ctx.Done():
		r.clock.Stop()
	}
	return r.Snapshot(), ctx.Err()
}

// Stop halts a Run in progress. No tick is applied after Stop returns.
func (r *Runner) Stop() {
	r.clock.Stop()
}

// Simulate ticks as fast as possible, without the clock, until the playthrough
// ends or ticks steps were taken.
func (r *Runner) Simulate(ticks uint64) Snapshot {
	r.mu.Lock()
	if r.session.State() != flappy.StateRunning {
		r.session.Start()
	}
	r.mu.Unlock()

	for i := uint64(0); i < ticks; i++ {
		if res := r.Step(); res.Ended {
			break
		}
	}
	return r.Snapshot()
}

// Snapshot returns a consistent copy of the session state.
func (r *Runner) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		State:     r.session.State(),
		Score:     r.session.Score(),
		HighScore: r.session.HighScore(),
		Ticks:     r.session.Ticks(),
		Actor:     r.session.Actor(),
		Obstacles: r.session.Obstacles(),
	}
}

// Steps returns the number of Step calls so far.
func (r *Runner) Steps() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.steps
}
